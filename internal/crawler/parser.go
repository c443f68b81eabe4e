package crawler

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"tutor-board/internal/domain/demand"
)

// Parsed is one demand recovered from an article together with the URL it is
// keyed by. Articles listing several demands yield "#item-N" suffixed URLs.
type Parsed struct {
	Demand    demand.Demand
	SourceURL string
}

var (
	cityKeywords = []string{"上海", "北京", "深圳", "广州", "杭州", "南京", "苏州", "成都", "武汉", "天津", "重庆", "西安"}

	// shanghaiDistricts are matched bare in the text and imply the city.
	shanghaiDistricts = []string{
		"浦东", "闵行", "徐汇", "黄浦", "静安", "普陀", "杨浦", "宝山", "嘉定", "松江", "青浦", "奉贤", "金山", "崇明", "长宁", "虹口",
	}

	gradeKeywords = []string{
		"高一", "高二", "高三", "初一", "初二", "初三",
		"一年级", "二年级", "三年级", "四年级", "五年级", "六年级",
		"幼儿", "小学", "初中", "高中",
	}

	subjectKeywords = []string{
		"语文", "数学", "英语", "物理", "化学", "生物", "历史", "地理", "政治", "奥数", "编程", "钢琴", "小提琴",
	}
)

const (
	fieldStop = `(?:[【\[]?(?:所在城市|城市|所在地区|地区|所在地|区域|区县|行政区|所在区|学员年级|学生年级|就读年级|学员信息|学员情况|学员|年级|辅导科目|授课科目|求教科目|科目|授课地址|上课地址|授课地点|上课地点|地址|地点|授课时间|上课时间|时间安排|时间|薪资|薪酬|薪水|课酬|课时费|时薪|报酬|待遇|老师要求|教员要求|要求)[】\]]?\s*[:：])`
	labelTail = `[】\]]?\s*[:：\-]?\s*`
)

func labelled(labels string, value string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)(?:^|\s)[【\[]?(?:` + labels + `)` + labelTail + value)
}

var (
	cityRe     = labelled(`所在城市|城市|所在地区|地区|所在地`, `(\p{Han}{2,12}?)(?:市)?(?:\s|$|`+fieldStop+`)`)
	districtRe = labelled(`区域|区县|行政区|所在区`, `(\p{Han}{1,12}?(?:区|县|市|新区))`)
	gradeRe    = labelled(`学员年级|学生年级|就读年级|学员信息|学员情况|学员|年级`, `([^\n。；;]+)`)
	subjectRe  = labelled(`辅导科目|授课科目|求教科目|辅导内容|科目|学科`, `([^\n。；;]+)`)
	addressRe  = regexp.MustCompile(`(?m)(?:^|\s)[【\[]?(?:授课地址|上课地址|授课地点|上课地点|地址|地点)[】\]]?\s*[:：\-]\s*([^\n。；;]+)`)
	salaryRe   = labelled(`老师薪水|老师薪资|课时薪酬|薪资|薪酬|薪水|课酬|课时费|提供时薪|时薪|报酬|待遇`, `([^\n。；;]+)`)

	salaryUnitRe  = regexp.MustCompile(`(\d{2,5}(?:\.\d+)?)\s*(?:[-~～至到]\s*(\d{2,5}(?:\.\d+)?))?\s*(?:元|￥|块)?\s*(?:/|每|一)?\s*(?:小时|h|H|课时)`)
	salaryRangeRe = regexp.MustCompile(`(\d{2,5}(?:\.\d+)?)\s*(?:[-~～至到]\s*(\d{2,5}(?:\.\d+)?))?`)
	fieldStopRe   = regexp.MustCompile(fieldStop)
	blockStartRe  = regexp.MustCompile(`^(?:【)?(?:学员信息|学员|年级性别|性别年级科目|信息|年级科目)(?:】)?\s*[:：]`)
)

const maxDescriptionRunes = 600

// ParseArticle turns an article into demands. A body that lists several
// demands, each starting with a learner line, is split per demand.
func ParseArticle(a Article) []Parsed {
	blocks := splitBlocks(a.Body)
	out := make([]Parsed, 0, len(blocks))
	for i, block := range blocks {
		source := a.URL
		title := a.Title
		if len(blocks) > 1 {
			source = fmt.Sprintf("%s#item-%d", a.URL, i+1)
			title = fmt.Sprintf("%s #%d", strings.TrimSpace(a.Title), i+1)
		}
		d := parseBlock(a.Title+"\n"+block, block)
		d.ID = DemandID(source)
		d.Title = strings.TrimSpace(title)
		d.CreatedAt = a.PublishedAt
		out = append(out, Parsed{Demand: fillDefaults(d), SourceURL: source})
	}
	return out
}

// DemandID derives a stable id from the source URL so re-imports update in
// place.
func DemandID(sourceURL string) string {
	sum := sha1.Sum([]byte(strings.TrimSpace(sourceURL)))
	return "A-" + hex.EncodeToString(sum[:])[:12]
}

func splitBlocks(body string) []string {
	var blocks []string
	var current []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if blockStartRe.MatchString(line) {
			if hasField(current) {
				blocks = append(blocks, strings.Join(current, "\n"))
			}
			// Lines before the first learner line are a preamble.
			current = nil
		}
		current = append(current, line)
	}
	if hasField(current) {
		blocks = append(blocks, strings.Join(current, "\n"))
	}
	if len(blocks) <= 1 {
		return []string{strings.TrimSpace(body)}
	}
	return blocks
}

func hasField(lines []string) bool {
	for _, l := range lines {
		if blockStartRe.MatchString(l) {
			return true
		}
	}
	return false
}

func parseBlock(text, description string) demand.Demand {
	d := demand.Demand{
		City:        firstGroup(cityRe, text),
		District:    firstGroup(districtRe, text),
		Grade:       trimField(firstGroup(gradeRe, text)),
		Subject:     trimField(firstGroup(subjectRe, text)),
		Location:    trimField(firstGroup(addressRe, text)),
		Description: truncateRunes(description, maxDescriptionRunes),
	}

	if g := firstKeyword(text, gradeKeywords); g != "" && (d.Grade == "" || strings.Contains(d.Grade, g)) {
		d.Grade = g
	}
	if s := firstKeyword(text, subjectKeywords); s != "" && (d.Subject == "" || strings.Contains(d.Subject, s)) {
		d.Subject = s
	}
	if d.District == "" {
		d.District = firstKeyword(text, shanghaiDistricts)
		if d.District != "" && d.City == "" {
			d.City = "上海"
		}
	}
	if d.City == "" {
		d.City = firstKeyword(text, cityKeywords)
	}
	d.SalaryMin, d.SalaryMax = parseSalary(text)
	return d
}

// parseSalary reads an hourly rate or range. Unlabelled numbers only count
// when an hourly unit follows them; "面议" and missing rates give zero.
func parseSalary(text string) (float64, float64) {
	if m := salaryUnitRe.FindStringSubmatch(text); m != nil {
		return rateBounds(m[1], m[2])
	}
	if label := firstGroup(salaryRe, text); label != "" {
		if strings.Contains(label, "面议") {
			return 0, 0
		}
		if m := salaryRangeRe.FindStringSubmatch(label); m != nil {
			return rateBounds(m[1], m[2])
		}
	}
	return 0, 0
}

func rateBounds(lo, hi string) (float64, float64) {
	floor, err := strconv.ParseFloat(lo, 64)
	if err != nil {
		return 0, 0
	}
	if hi == "" {
		return floor, floor
	}
	ceiling, err := strconv.ParseFloat(hi, 64)
	if err != nil {
		return floor, floor
	}
	if ceiling < floor {
		floor, ceiling = ceiling, floor
	}
	return floor, ceiling
}

func fillDefaults(d demand.Demand) demand.Demand {
	def := func(v *string, fallback string) {
		if strings.TrimSpace(*v) == "" {
			*v = fallback
		}
	}
	def(&d.Title, demand.DefaultTitle)
	def(&d.City, demand.DefaultCity)
	def(&d.District, demand.DefaultDistrict)
	def(&d.Grade, demand.DefaultGrade)
	def(&d.Subject, demand.DefaultSubject)
	def(&d.CreatedAt, demand.DefaultCreatedAt)
	def(&d.Description, demand.DefaultDescription)
	def(&d.Location, demand.DefaultLocation)
	return d
}

func firstGroup(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func firstKeyword(text string, keywords []string) string {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return k
		}
	}
	return ""
}

// trimField cuts a captured value at the next inline field label.
func trimField(v string) string {
	if loc := fieldStopRe.FindStringIndex(v); loc != nil {
		v = v[:loc[0]]
	}
	return strings.Trim(strings.TrimSpace(v), "，,、 ")
}

func truncateRunes(s string, n int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n]) + "…"
}
