package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Port            int           `yaml:"port" default:"8080" validate:"gt=0,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error fatal panic"`
		Format string `yaml:"format" default:"console" validate:"oneof=json console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"log"`
	Binance struct {
		// Ordered fallback list; a BINANCE_BASE env override is prepended.
		Endpoints       []string      `yaml:"endpoints"`
		SnapshotTimeout time.Duration `yaml:"snapshot_timeout" default:"25s"`
		KlinesTimeout   time.Duration `yaml:"klines_timeout" default:"25s"`
		TradesTimeout   time.Duration `yaml:"trades_timeout" default:"20s"`
		KlineLimit      int           `yaml:"kline_limit" default:"200" validate:"gt=0,lte=1000"`
		UserAgent       string        `yaml:"user_agent" default:"trade-radar"`
		RateLimit       struct {
			Capacity     float64 `yaml:"capacity" default:"20"`
			RefillPerSec float64 `yaml:"refill_per_sec" default:"10"`
		} `yaml:"rate_limit"`
	} `yaml:"binance"`
	Stream struct {
		Enabled        bool          `yaml:"enabled" default:"false"`
		URL            string        `yaml:"url" default:"wss://stream.binance.com:9443/ws"`
		ReconnectDelay time.Duration `yaml:"reconnect_delay" default:"5s"`
		PingInterval   time.Duration `yaml:"ping_interval" default:"30s"`
		TapeSize       int           `yaml:"tape_size" default:"256" validate:"gt=0"`
	} `yaml:"stream"`
	Radar struct {
		QuoteAsset        string   `yaml:"quote_asset" default:"USDT"`
		StableBases       []string `yaml:"stable_bases"`
		LeveragedSuffixes []string `yaml:"leveraged_suffixes"`
		VolumeMinUSD      float64  `yaml:"volume_min_usd" default:"60000000" validate:"gte=0"`
		ChangePctMin      float64  `yaml:"change_pct_min" default:"2.0" validate:"gte=0"`
		ChangePctMax      float64  `yaml:"change_pct_max" default:"25.0" validate:"gtefield=ChangePctMin"`
		PriceMin          float64  `yaml:"price_min" default:"0.00001"`
		TopN              int      `yaml:"top_n" default:"10" validate:"gt=0,lte=50"`
		SpreadProxy       float64  `yaml:"spread_proxy" default:"0.002"`
		Intervals         struct {
			Short  string `yaml:"short" default:"1h"`
			Medium string `yaml:"medium" default:"4h"`
			Long   string `yaml:"long" default:"1d"`
		} `yaml:"intervals"`
	} `yaml:"radar"`
	CacheTTL struct {
		TopPicks   time.Duration `yaml:"top_picks" default:"30s"`
		Indicators time.Duration `yaml:"indicators" default:"90s"`
		Scalp      time.Duration `yaml:"scalp" default:"30s"`
		Whale      time.Duration `yaml:"whale" default:"20s"`
	} `yaml:"cache_ttl"`
	Regime struct {
		AnchorPrimary   string  `yaml:"anchor_primary" default:"BTC"`
		AnchorSecondary string  `yaml:"anchor_secondary" default:"ETH"`
		WeightPrimary   float64 `yaml:"weight_primary" default:"0.5"`
		WeightSecondary float64 `yaml:"weight_secondary" default:"0.3"`
		WeightBreadth   float64 `yaml:"weight_breadth" default:"0.2"`
		BreadthTopN     int     `yaml:"breadth_top_n" default:"20" validate:"gt=0"`
		StrongBullish   float64 `yaml:"strong_bullish" default:"1.2"`
		Bullish         float64 `yaml:"bullish" default:"0.4"`
		Panic           float64 `yaml:"panic" default:"-1.2"`
		Bearish         float64 `yaml:"bearish" default:"-0.4"`
	} `yaml:"regime"`
	Scoring struct {
		MomentumMin     float64 `yaml:"momentum_min" default:"-18"`
		MomentumMax     float64 `yaml:"momentum_max" default:"22"`
		LiquidityLogMin float64 `yaml:"liquidity_log_min" default:"7.5"`
		LiquidityLogMax float64 `yaml:"liquidity_log_max" default:"10.0"`
		SpreadFloor     float64 `yaml:"spread_floor" default:"0.001"`
		SpreadCeil      float64 `yaml:"spread_ceil" default:"0.010"`
		WeightMomentum  float64 `yaml:"weight_momentum" default:"0.34"`
		WeightLiquidity float64 `yaml:"weight_liquidity" default:"0.52"`
		WeightSpread    float64 `yaml:"weight_spread" default:"0.14"`
		RegimePenalty   float64 `yaml:"regime_penalty" default:"6.0"`
		ChasePenalty    float64 `yaml:"chase_penalty" default:"4.0"`
		ChaseChangePct  float64 `yaml:"chase_change_pct" default:"8.0"`
	} `yaml:"scoring"`
	Signal struct {
		OverheatedRSI float64 `yaml:"overheated_rsi" default:"72"`
		OversoldRSI   float64 `yaml:"oversold_rsi" default:"35"`
		HighATRPct    float64 `yaml:"high_atr_pct" default:"6.0"`
		ModerateATR   float64 `yaml:"moderate_atr_pct" default:"4.2"`
		MaxReasons    int     `yaml:"max_reasons" default:"6" validate:"gt=0"`
		PlanStopPct   float64 `yaml:"plan_stop_pct" default:"0.03"`
		PlanTake1Pct  float64 `yaml:"plan_take1_pct" default:"0.04"`
		PlanTake2Pct  float64 `yaml:"plan_take2_pct" default:"0.07"`
	} `yaml:"signal"`
	Scalp struct {
		TargetMin        float64 `yaml:"target_min" default:"0.02"`
		TargetMax        float64 `yaml:"target_max" default:"0.03"`
		StopMin          float64 `yaml:"stop_min" default:"0.008"`
		StopMax          float64 `yaml:"stop_max" default:"0.02"`
		StopATRMult      float64 `yaml:"stop_atr_mult" default:"1.2"`
		TakeATRMult      float64 `yaml:"take_atr_mult" default:"1.8"`
		OverheatedRSI    float64 `yaml:"overheated_rsi" default:"75"`
		MaxOpportunities int     `yaml:"max_opportunities" default:"12" validate:"gt=0"`
		NotifyMinRR      float64 `yaml:"notify_min_rr" default:"1.6"`
	} `yaml:"scalp"`
	Whale struct {
		ThresholdUSD   float64       `yaml:"threshold_usd" default:"750000" validate:"gt=0"`
		LookbackTrades int           `yaml:"lookback_trades" default:"80" validate:"gt=0,lte=1000"`
		MaxSymbols     int           `yaml:"max_symbols" default:"6" validate:"gt=0"`
		MaxEvents      int           `yaml:"max_events" default:"20" validate:"gt=0"`
		FreshWindow    time.Duration `yaml:"fresh_window" default:"60s"`
	} `yaml:"whale"`
	Cache struct {
		Backend string `yaml:"backend" default:"memory" validate:"oneof=memory redis layered"`
		Redis   struct {
			Host     string `yaml:"host" default:"localhost"`
			Port     int    `yaml:"port" default:"6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix" default:"traderadar"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Telegram struct {
		Enabled bool   `yaml:"enabled"`
		Token   string `yaml:"token"`
		ChatID  string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Kafka struct {
		Enabled      bool     `yaml:"enabled"`
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic" default:"traderadar.whale_events"`
		RequiredAcks int      `yaml:"required_acks" default:"-1"`
		Compression  string   `yaml:"compression" default:"gzip"`
		MaxAttempts  int      `yaml:"max_attempts" default:"3"`
	} `yaml:"kafka"`
}

// Load reads and parses a YAML configuration file, then fills defaults
// and validates.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.fill(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Default returns a Config with all defaults applied and no file read.
func Default() (*Config, error) {
	var c Config
	if err := c.fill(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) fill() error {
	if err := defaults.Set(c); err != nil {
		return fmt.Errorf("apply defaults: %w", err)
	}
	if len(c.Binance.Endpoints) == 0 {
		c.Binance.Endpoints = []string{
			"https://data-api.binance.vision",
			"https://api1.binance.com",
			"https://api2.binance.com",
			"https://api3.binance.com",
			"https://api.binance.com",
		}
	}
	if len(c.Radar.StableBases) == 0 {
		c.Radar.StableBases = []string{
			"USDT", "USDC", "BUSD", "TUSD", "FDUSD", "DAI",
			"EUR", "TRY", "BRL", "GBP", "AUD", "RUB", "UAH",
		}
	}
	if len(c.Radar.LeveragedSuffixes) == 0 {
		c.Radar.LeveragedSuffixes = []string{"UPUSDT", "DOWNUSDT", "BULLUSDT", "BEARUSDT"}
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("BINANCE_BASE"); v != "" {
		c.Binance.Endpoints = append([]string{strings.TrimRight(v, "/")}, c.Binance.Endpoints...)
	}
	if v := os.Getenv("TELEGRAM_ENABLED"); v != "" {
		c.Telegram.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.Token = strings.TrimSpace(v)
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = strings.TrimSpace(v)
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		host, port, ok := strings.Cut(v, ":")
		c.Cache.Redis.Host = host
		if ok {
			if p, err := strconv.Atoi(port); err == nil {
				c.Cache.Redis.Port = p
			}
		}
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
		c.Kafka.Enabled = true
	}
	if v := os.Getenv("VOL_MIN_USD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Radar.VolumeMinUSD = f
		}
	}
	if v := os.Getenv("WHALE_THRESHOLD_USD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Whale.ThresholdUSD = f
		}
	}

	return c, nil
}

// Validate checks the configuration invariants that defaults cannot express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if w := c.Regime.WeightPrimary + c.Regime.WeightSecondary + c.Regime.WeightBreadth; !nearOne(w) {
		return fmt.Errorf("regime weights must sum to 1.0, got %v", w)
	}
	if w := c.Scoring.WeightMomentum + c.Scoring.WeightLiquidity + c.Scoring.WeightSpread; !nearOne(w) {
		return fmt.Errorf("scoring weights must sum to 1.0, got %v", w)
	}
	if c.Scalp.TargetMin > c.Scalp.TargetMax {
		return fmt.Errorf("scalp target_min %v exceeds target_max %v", c.Scalp.TargetMin, c.Scalp.TargetMax)
	}
	if c.Scalp.StopMin > c.Scalp.StopMax {
		return fmt.Errorf("scalp stop_min %v exceeds stop_max %v", c.Scalp.StopMin, c.Scalp.StopMax)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka enabled but no brokers configured")
	}
	if c.Telegram.Enabled && (c.Telegram.Token == "" || c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram enabled but token/chat_id missing")
	}
	return nil
}

func nearOne(w float64) bool {
	return w > 0.999 && w < 1.001
}
