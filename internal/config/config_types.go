package config

import (
	"fmt"
	"time"

	apperrors "github.com/darkkaiser/biomac-scraper/internal/pkg/errors"
	"github.com/go-playground/validator/v10"
)

const (
	// DefaultBaseURL 스크래핑 대상 상점 주소
	DefaultBaseURL = "https://reventa.biomac.com.ar"

	// DefaultLoginPath WordPress 로그인 페이지 경로
	DefaultLoginPath = "/wp-login.php"

	// DefaultCardSelector 카테고리 페이지에서 상품 카드를 찾는 CSS 선택자
	DefaultCardSelector = ".item-producto-bio"

	// DefaultMaxPages 카테고리마다 따라갈 목록 페이지 수 (1이면 첫 페이지만)
	DefaultMaxPages = 1

	// DefaultMargin 오버라이드가 없는 상품에 적용하는 기본 마진(%)
	DefaultMargin = 30

	// DefaultMaxRetries 기본 최대 재시도 횟수
	DefaultMaxRetries = 3

	// DefaultRetryDelay 재시도 사이의 기본 대기 시간
	DefaultRetryDelay = 2 * time.Second

	// DefaultTimeout HTTP 요청 타임아웃
	DefaultTimeout = 30 * time.Second

	// DefaultRequestInterval 연속된 HTTP 요청 사이의 최소 간격
	DefaultRequestInterval = 1 * time.Second

	// DefaultMaxBytes 응답 본문 최대 크기 (10MB)
	DefaultMaxBytes int64 = 10 * 1024 * 1024

	// DefaultSheetName 리포트 시트 이름
	DefaultSheetName = "Productos"

	// DefaultHistoryPath 실행 이력 데이터베이스 파일 경로
	DefaultHistoryPath = "biomac-history.db"
)

// 리포트 출력 모드
const (
	ReportModeStatic  = "static"
	ReportModeFormula = "formula"
)

// AppConfig 애플리케이션의 전체 설정 구조체입니다.
type AppConfig struct {
	Debug       bool              `json:"debug"`
	Store       StoreConfig       `json:"store"`
	Credentials CredentialsConfig `json:"credentials"`
	HTTP        HTTPConfig        `json:"http"`
	HTTPRetry   HTTPRetryConfig   `json:"http_retry"`
	Pricing     PricingConfig     `json:"pricing"`
	Report      ReportConfig      `json:"report"`
	History     HistoryConfig     `json:"history"`
	Schedule    ScheduleConfig    `json:"schedule"`
}

func (c *AppConfig) validate() error {
	if err := c.Store.validate(); err != nil {
		return err
	}
	if err := c.Credentials.validate(); err != nil {
		return err
	}
	if err := checkStruct(validate, c.HTTP, "HTTP"); err != nil {
		return err
	}
	if err := c.HTTPRetry.validate(); err != nil {
		return err
	}
	if err := c.Pricing.validate(); err != nil {
		return err
	}
	if err := c.Report.validate(); err != nil {
		return err
	}
	if err := checkStruct(validate, c.History, "History"); err != nil {
		return err
	}
	return c.Schedule.validate()
}

// VerifyRecommendations 실행은 가능하지만 권장되지 않는 설정에 대한 경고 목록을 반환합니다.
func (c *AppConfig) VerifyRecommendations() []string {
	var warnings []string

	if c.HTTP.RequestInterval < 500*time.Millisecond {
		warnings = append(warnings, fmt.Sprintf("요청 간격(http.request_interval)이 매우 짧습니다(%s). 상점 서버에 부담을 줄 수 있습니다", c.HTTP.RequestInterval))
	}
	if c.Pricing.DefaultMargin == 0 {
		warnings = append(warnings, "기본 마진(pricing.default_margin)이 0%로 설정되었습니다. 최종 가격이 원가와 같아집니다")
	}

	return warnings
}

// StoreConfig 스크래핑 대상 상점 설정입니다.
type StoreConfig struct {
	BaseURL      string           `json:"base_url" validate:"required,http_url"`
	LoginPath    string           `json:"login_path" validate:"required,startswith=/"`
	CardSelector string           `json:"card_selector" validate:"required"`
	MaxPages     int              `json:"max_pages" validate:"gte=1,lte=50"`
	Categories   []CategoryConfig `json:"categories" validate:"min=1,unique=URL,dive"`
}

func (c *StoreConfig) validate() error {
	if err := validate.Struct(c); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fieldErr := range validationErrors {
				switch fieldErr.StructField() {
				case "BaseURL":
					return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("상점 주소(base_url)가 올바른 URL이 아닙니다: '%v'", fieldErr.Value()))
				case "LoginPath":
					return apperrors.New(apperrors.InvalidInput, "로그인 경로(login_path)는 '/'로 시작해야 합니다")
				case "MaxPages":
					return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("카테고리별 최대 페이지 수(max_pages)는 1 이상 50 이하여야 합니다: %v", fieldErr.Value()))
				case "Categories":
					switch fieldErr.Tag() {
					case "min":
						return apperrors.New(apperrors.InvalidInput, "수집할 카테고리(categories)가 하나 이상 필요합니다")
					case "unique":
						return apperrors.New(apperrors.InvalidInput, "카테고리 목록에 중복된 URL이 존재합니다")
					}
				case "URL":
					return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("카테고리 URL 형식이 올바르지 않습니다(예: %s/categoria-producto/frutas/): '%v'", DefaultBaseURL, fieldErr.Value()))
				case "Color":
					return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("카테고리 색상(color)은 6자리 16진수여야 합니다(예: ffa127): '%v'", fieldErr.Value()))
				}
			}
			return checkStruct(validate, c, "Store")
		}
		return apperrors.Wrap(err, apperrors.InvalidInput, "상점 설정 검증 중 알 수 없는 오류가 발생했습니다")
	}
	return nil
}

// CategoryConfig 수집 대상 카테고리 한 개의 설정입니다.
type CategoryConfig struct {
	URL   string `json:"url" validate:"required,category_url"`
	Color string `json:"color" validate:"omitempty,hex_color"`
}

// CredentialsConfig 상점 로그인 정보입니다. .env 파일의 LOG, PWD 값으로도 채울 수 있습니다.
type CredentialsConfig struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (c *CredentialsConfig) validate() error {
	if c.Username == "" || c.Password == "" {
		return apperrors.New(apperrors.InvalidInput, "로그인 정보(credentials.username, credentials.password)가 설정되지 않았습니다. 설정 파일 또는 .env 파일(LOG, PWD)을 확인하세요")
	}
	return nil
}

// HTTPConfig HTTP 클라이언트 설정입니다.
type HTTPConfig struct {
	Timeout         time.Duration `json:"timeout" validate:"gt=0"`
	RequestInterval time.Duration `json:"request_interval" validate:"gte=0"`
	MaxBytes        int64         `json:"max_bytes" validate:"gt=0"`
	UserAgent       string        `json:"user_agent"`
}

// HTTPRetryConfig HTTP 요청 실패 시 재시도 정책입니다.
type HTTPRetryConfig struct {
	MaxRetries int           `json:"max_retries" validate:"min=0,max=10"`
	RetryDelay time.Duration `json:"retry_delay" validate:"gt=0"`
}

func (c *HTTPRetryConfig) validate() error {
	if err := validate.Struct(c); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			switch validationErrors[0].StructField() {
			case "MaxRetries":
				return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("최대 재시도 횟수(max_retries)는 0에서 10 사이여야 합니다: %d", c.MaxRetries))
			case "RetryDelay":
				return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("HTTP 재시도 대기 시간(retry_delay)은 0보다 커야 합니다 (예: 1s, 500ms): '%s'", c.RetryDelay))
			}
		}
		return checkStruct(validate, c, "HTTPRetry")
	}
	return nil
}

// PricingConfig 판매가 계산 설정입니다.
type PricingConfig struct {
	DefaultMargin int    `json:"default_margin" validate:"min=0,max=1000"`
	OverridesFile string `json:"overrides_file" validate:"omitempty,file"`
}

func (c *PricingConfig) validate() error {
	if err := validate.Struct(c); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			switch validationErrors[0].StructField() {
			case "DefaultMargin":
				return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("기본 마진(default_margin)은 0에서 1000 사이여야 합니다: %d", c.DefaultMargin))
			case "OverridesFile":
				return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("마진 오버라이드 파일(overrides_file)을 찾을 수 없습니다: '%s'", c.OverridesFile))
			}
		}
		return checkStruct(validate, c, "Pricing")
	}
	return nil
}

// ReportConfig 엑셀 리포트 설정입니다.
type ReportConfig struct {
	Mode       string `json:"mode" validate:"oneof=static formula"`
	OutputDir  string `json:"output_dir"`
	FilePrefix string `json:"file_prefix"`
	SheetName  string `json:"sheet_name" validate:"required,max=31"`
}

func (c *ReportConfig) validate() error {
	if err := validate.Struct(c); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			switch validationErrors[0].StructField() {
			case "Mode":
				return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("리포트 모드(mode)는 'static' 또는 'formula'만 허용됩니다: '%s'", c.Mode))
			case "SheetName":
				return apperrors.New(apperrors.InvalidInput, "시트 이름(sheet_name)은 1자 이상 31자 이하여야 합니다")
			}
		}
		return checkStruct(validate, c, "Report")
	}
	return nil
}

// HistoryConfig 실행 이력 저장 설정입니다.
type HistoryConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path" validate:"required_if=Enabled true"`
}

// ScheduleConfig 정기 실행 설정입니다.
type ScheduleConfig struct {
	Enabled  bool   `json:"enabled"`
	TimeSpec string `json:"time_spec" validate:"required_if=Enabled true,omitempty,cron_spec"`
}

func (c *ScheduleConfig) validate() error {
	if err := validate.Struct(c); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			switch validationErrors[0].Tag() {
			case "required_if":
				return apperrors.New(apperrors.InvalidInput, "정기 실행 활성화 시 스케줄(time_spec)은 필수입니다")
			case "cron_spec":
				return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("스케줄(time_spec)을 해석할 수 없습니다 (예: 0 0 7 * * MON-SAT): '%s'", c.TimeSpec))
			}
		}
		return checkStruct(validate, c, "Schedule")
	}
	return nil
}

// newDefaultConfig 설정 파일에 값이 없을 때 사용할 기본 설정을 생성합니다.
func newDefaultConfig() AppConfig {
	return AppConfig{
		Store: StoreConfig{
			BaseURL:      DefaultBaseURL,
			LoginPath:    DefaultLoginPath,
			CardSelector: DefaultCardSelector,
			MaxPages:     DefaultMaxPages,
			Categories: []CategoryConfig{
				{URL: DefaultBaseURL + "/categoria-producto/vegetales/", Color: "00913f"},
				{URL: DefaultBaseURL + "/categoria-producto/frutas/", Color: "ffa127"},
				{URL: DefaultBaseURL + "/categoria-producto/helados/", Color: "24afff"},
			},
		},
		HTTP: HTTPConfig{
			Timeout:         DefaultTimeout,
			RequestInterval: DefaultRequestInterval,
			MaxBytes:        DefaultMaxBytes,
		},
		HTTPRetry: HTTPRetryConfig{
			MaxRetries: DefaultMaxRetries,
			RetryDelay: DefaultRetryDelay,
		},
		Pricing: PricingConfig{
			DefaultMargin: DefaultMargin,
		},
		Report: ReportConfig{
			Mode:      ReportModeStatic,
			OutputDir: ".",
			SheetName: DefaultSheetName,
		},
		History: HistoryConfig{
			Path: DefaultHistoryPath,
		},
	}
}

// CategoryColors 카테고리 슬러그별 리포트 행 색상을 반환합니다.
func (c *StoreConfig) CategoryColors(slugOf func(url string) string) map[string]string {
	colors := make(map[string]string, len(c.Categories))
	for _, cat := range c.Categories {
		if cat.Color != "" {
			colors[slugOf(cat.URL)] = cat.Color
		}
	}
	return colors
}

// CategoryURLs 설정된 카테고리 URL 목록을 순서대로 반환합니다.
func (c *StoreConfig) CategoryURLs() []string {
	urls := make([]string, 0, len(c.Categories))
	for _, cat := range c.Categories {
		urls = append(urls, cat.URL)
	}
	return urls
}
