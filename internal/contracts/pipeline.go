package contracts

// Pipeline Stage 정의 (SSOT)
// 모든 로그에서 이 상수를 사용해야 함
//
// 파이프라인 흐름:
//   screens: GAINERS → HIGH_ROE → SCREEN_REPORT
//   filter:  LOAD → PREPROCESS → RECOMMEND → REPORT

// Stage represents a pipeline stage
type Stage string

const (
	// StageGainers: 상승률 상위 스크리닝
	// 위치: internal/selection/screener.go
	StageGainers Stage = "SCREEN_GAINERS"

	// StageHighROE: ROE 스크리닝
	// 위치: internal/selection/screener.go
	StageHighROE Stage = "SCREEN_HIGH_ROE"

	// StageScreenReport: 스크리닝 결과 CSV
	// 위치: internal/report/
	StageScreenReport Stage = "SCREEN_REPORT"

	// StageLoad: CSV 로드 및 정제
	// 위치: internal/valuation/loader.go
	StageLoad Stage = "FILTER_LOAD"

	// StagePreprocess: 섹터 제외, 유동성/시총 필터, P/S 등급
	// 위치: internal/valuation/preprocess.go
	StagePreprocess Stage = "FILTER_PREPROCESS"

	// StageRecommend: excellent/good 선별 및 정렬
	// 위치: internal/valuation/preprocess.go
	StageRecommend Stage = "FILTER_RECOMMEND"

	// StageReport: Excel/HTML/CSV 리포트
	// 위치: internal/report/
	StageReport Stage = "FILTER_REPORT"
)

// String returns the stage name
func (s Stage) String() string {
	return string(s)
}

// Description returns a short human description of the stage
func (s Stage) Description() string {
	switch s {
	case StageGainers:
		return "top gainers screen"
	case StageHighROE:
		return "high ROE screen"
	case StageScreenReport:
		return "screen CSV output"
	case StageLoad:
		return "load and clean input CSV"
	case StagePreprocess:
		return "exclusions, minimums, P/S rating"
	case StageRecommend:
		return "keep recommended ratings"
	case StageReport:
		return "Excel/HTML/CSV reports"
	default:
		return "unknown"
	}
}

// AllStages returns all pipeline stages in order
func AllStages() []Stage {
	return []Stage{
		StageGainers,
		StageHighROE,
		StageScreenReport,
		StageLoad,
		StagePreprocess,
		StageRecommend,
		StageReport,
	}
}

// IsValidStage checks if a stage string is valid
func IsValidStage(s string) bool {
	for _, stage := range AllStages() {
		if string(stage) == s {
			return true
		}
	}
	return false
}

// PipelineResult represents the result of a pipeline stage execution
type PipelineResult struct {
	Stage       Stage                  `json:"stage"`
	Success     bool                   `json:"success"`
	InputCount  int                    `json:"input_count"`
	OutputCount int                    `json:"output_count"`
	Duration    int64                  `json:"duration_ms"`
	Error       string                 `json:"error,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}
