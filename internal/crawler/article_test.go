package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wechatPage = `<html><head>
<title>fallback title</title>
<meta property="og:title" content="浦东家教信息汇总">
<meta property="article:published_time" content="2026-02-16T10:30:00+08:00">
<script>var msg_title = '';</script>
</head><body>
<h1 id="activity-name">ignored</h1>
<div id="js_content">
<p>【学员信息】：初二男生</p>
<p>辅导科目：数学<br>地址：浦东新区金桥</p>
<p>薪资：150-200元/小时</p>
<script>alert(1)</script>
</div>
</body></html>`

func TestExtractArticle_WechatLayout(t *testing.T) {
	a, err := ExtractArticle(" https://mp.example.com/s/abc ", []byte(wechatPage))
	require.NoError(t, err)

	assert.Equal(t, "https://mp.example.com/s/abc", a.URL)
	assert.Equal(t, "浦东家教信息汇总", a.Title)
	assert.Equal(t, "2026-02-16 10:30:00", a.PublishedAt)
	assert.Equal(t, "【学员信息】：初二男生\n辅导科目：数学\n地址：浦东新区金桥\n薪资：150-200元/小时", a.Body)
	assert.NotContains(t, a.Body, "alert")
}

func TestExtractArticle_Fallbacks(t *testing.T) {
	page := `<html><head><title> 普通 页面 </title>
<script>var msg_title = "脚本标题"; var ct = "1771209000";</script></head>
<body><article><p>内容一</p><p>内容二</p></article></body></html>`

	a, err := ExtractArticle("https://example.com/a", []byte(page))
	require.NoError(t, err)

	assert.Equal(t, "脚本标题", a.Title)
	assert.Equal(t, "2026-02-16 10:30:00", a.PublishedAt)
	assert.Equal(t, "内容一\n内容二", a.Body)
}

func TestExtractArticle_TitleTagAndMissingTime(t *testing.T) {
	a, err := ExtractArticle("u", []byte(`<html><head><title> 普通   页面 </title></head><body><div>正文</div></body></html>`))
	require.NoError(t, err)
	assert.Equal(t, "普通 页面", a.Title)
	assert.Empty(t, a.PublishedAt)
	assert.Equal(t, "正文", a.Body)
}

func TestExtractArticle_Empty(t *testing.T) {
	_, err := ExtractArticle("u", []byte(`<html><body><script>x()</script></body></html>`))
	assert.ErrorIs(t, err, ErrEmptyArticle)
}

func TestNormalizeTimestamp(t *testing.T) {
	assert.Equal(t, "2026-02-16 10:30:00", normalizeTimestamp("2026-02-16 10:30:00"))
	assert.Equal(t, "2026-02-16 00:00:00", normalizeTimestamp("2026-02-16"))
	assert.Equal(t, "2026-02-16 10:30:00", normalizeTimestamp("2026-02-16T02:30:00Z"))
	assert.Empty(t, normalizeTimestamp("yesterday"))
}
