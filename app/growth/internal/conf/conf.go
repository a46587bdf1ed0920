package conf

type Bootstrap struct {
	Server *Server
	Data   *Data
	Growth *Growth
}

type Server struct {
	Http *HTTP
}

type HTTP struct {
	Addr    string
	Timeout string
}

type Data struct {
	Database *Database
	Redis    *Redis
	Cache    *Cache
	// Timeout 单次账户/历史/缓存操作的超时，如 "3s"
	Timeout string
}

type Database struct {
	Driver string
	Source string
}

type Redis struct {
	Addr     string
	Password string
	Db       int32
}

// Cache 数据源缓存存储：postgres（默认）| redis | memory
type Cache struct {
	Driver string
}

type Growth struct {
	CreditCost     int32        `json:"credit_cost"`
	DefaultBalance int32        `json:"default_balance"`
	CacheTtlHours  int32        `json:"cache_ttl_hours"`
	Llm            *LLM         `json:"llm"`
	Sources        *Sources     `json:"sources"`
	Log            *Log         `json:"log"`
	Concurrency    *Concurrency `json:"concurrency"`
}

type LLM struct {
	Provider    string  `json:"provider"`
	BaseUrl     string  `json:"base_url"`
	ApiKey      string  `json:"api_key"`
	Model       string  `json:"model"`
	Temperature float32 `json:"temperature"`
	MaxTokens   int32   `json:"max_tokens"`
	Timeout     int32   `json:"timeout"`
}

type Sources struct {
	Youtube *YouTube `json:"youtube"`
	News    *News    `json:"news"`
	Social  *Social  `json:"social"`
}

type YouTube struct {
	ApiKey     string `json:"api_key"`
	BaseUrl    string `json:"base_url"`
	MaxResults int32  `json:"max_results"`
	Timeout    int32  `json:"timeout"`
}

type News struct {
	ApiKey        string `json:"api_key"`
	BaseUrl       string `json:"base_url"`
	Language      string `json:"language"`
	PageSize      int32  `json:"page_size"`
	Timeout       int32  `json:"timeout"`
	EnrichContent bool   `json:"enrich_content"`
}

type Social struct {
	Provider string `json:"provider"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

type Concurrency struct {
	Qps int32 `json:"qps"`
	Rpm int32 `json:"rpm"`
}

const (
	DefaultCreditCost    = 380
	DefaultStartBalance  = 100
	DefaultCacheTTLHours = 24
)

// Cost 单次报告消耗的积分
func (g *Growth) Cost() int {
	if g == nil || g.CreditCost <= 0 {
		return DefaultCreditCost
	}
	return int(g.CreditCost)
}

// StartBalance 新账户的初始积分
func (g *Growth) StartBalance() int {
	if g == nil || g.DefaultBalance <= 0 {
		return DefaultStartBalance
	}
	return int(g.DefaultBalance)
}

// CacheTTLHours 数据源缓存有效期（小时）
func (g *Growth) CacheTTLHours() int {
	if g == nil || g.CacheTtlHours <= 0 {
		return DefaultCacheTTLHours
	}
	return int(g.CacheTtlHours)
}
