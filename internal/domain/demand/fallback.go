package demand

var fallbackDemands = []Demand{
	{
		ID:          "D-1001",
		Title:       "初二数学提分冲刺",
		City:        "深圳",
		District:    "南山",
		Grade:       "初二",
		Subject:     "数学",
		SalaryMin:   180,
		SalaryMax:   260,
		CreatedAt:   "2026-02-16 10:30",
		Description: "目标期中考试提升 15 分，周内晚间可上课，优先有竞赛背景老师。",
		Location:    "南山区科技园地铁站附近",
	},
	{
		ID:          "D-1002",
		Title:       "高一物理基础补齐",
		City:        "深圳",
		District:    "福田",
		Grade:       "高一",
		Subject:     "物理",
		SalaryMin:   220,
		SalaryMax:   320,
		CreatedAt:   "2026-02-16 09:12",
		Description: "孩子概念薄弱，需要从受力分析和运动学重新梳理。",
		Location:    "福田区石厦",
	},
	{
		ID:          "D-1003",
		Title:       "五年级英语口语训练",
		City:        "广州",
		District:    "天河",
		Grade:       "五年级",
		Subject:     "英语",
		SalaryMin:   140,
		SalaryMax:   200,
		CreatedAt:   "2026-02-15 19:50",
		Description: "希望以场景对话为主，能纠正发音并提升表达自信。",
		Location:    "天河区员村",
	},
	{
		ID:          "D-1004",
		Title:       "高三化学一轮复习",
		City:        "北京",
		District:    "海淀",
		Grade:       "高三",
		Subject:     "化学",
		SalaryMin:   280,
		SalaryMax:   420,
		CreatedAt:   "2026-02-14 15:20",
		Description: "重点提升有机与电化学，按周制定刷题与纠错计划。",
		Location:    "海淀区中关村",
	},
	{
		ID:          "D-1005",
		Title:       "六年级语文阅读写作",
		City:        "上海",
		District:    "浦东",
		Grade:       "六年级",
		Subject:     "语文",
		SalaryMin:   160,
		SalaryMax:   230,
		CreatedAt:   "2026-02-13 21:05",
		Description: "希望提升阅读理解与小作文表达，建立稳定输出习惯。",
		Location:    "浦东新区金桥",
	},
}

// Fallback returns a fresh copy of the built-in sample demands.
func Fallback() []Demand {
	out := make([]Demand, len(fallbackDemands))
	copy(out, fallbackDemands)
	return out
}
