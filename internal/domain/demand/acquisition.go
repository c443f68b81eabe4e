package demand

// DemandsPath is the relative endpoint browsers read the demand list from.
const DemandsPath = "/api/tutoring/demands"

const (
	HintFallback   = "数据来源：本地示例（可直接替换为后端 API）"
	HintLoadFailed = "加载失败，已使用本地示例数据。"
)

type Origin int

const (
	OriginLive Origin = iota
	OriginFallback
)

func (o Origin) String() string {
	if o == OriginFallback {
		return "fallback"
	}
	return "live"
}

// Acquisition is the outcome of reading the demand list: either live data
// from Endpoint, or the fallback set together with the Reason the live read
// was abandoned.
type Acquisition struct {
	Demands  []Demand
	Origin   Origin
	Endpoint string
	Reason   error
}

func Live(endpoint string, demands []Demand) Acquisition {
	return Acquisition{Demands: demands, Origin: OriginLive, Endpoint: endpoint}
}

func FallbackFor(reason error) Acquisition {
	return Acquisition{Demands: Fallback(), Origin: OriginFallback, Reason: reason}
}

func (a Acquisition) IsFallback() bool {
	return a.Origin == OriginFallback
}

// Hint is the status line shown next to the result count.
func (a Acquisition) Hint() string {
	if a.IsFallback() {
		return HintFallback
	}
	return "数据来源：" + a.Endpoint
}
