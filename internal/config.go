package internal

import (
	"errors"
	"fmt"
	"io/fs"
	apperr "sms-scheduler/errors"
	"sms-scheduler/infrastructure/delivery"
	"sms-scheduler/runtime"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	DriverLog  = "log"
	DriverHTTP = "http"
)

var validate = validator.New()

type Config struct {
	LogLevel               string        `env:"LOG_LEVEL,default=INFO"`
	BadgerFilepath         string        `env:"BADGER_FILEPATH,required=true" validate:"required"`
	ScheduleKey            string        `env:"SCHEDULE_KEY,default=schedule:messages" validate:"required"`
	QueueSize              int           `env:"QUEUE_SIZE,default=64" validate:"gt=0"`
	RestartInterval        time.Duration `env:"RESTART_INTERVAL,default=200ms" validate:"gt=0"`
	HeartbeatInterval      time.Duration `env:"HEARTBEAT_INTERVAL,default=1m" validate:"gt=0"`
	MetricInterval         time.Duration `env:"METRIC_INTERVAL,default=30s" validate:"gt=0"`
	LowCapacityThreshold   int           `env:"LOW_CAPACITY_THRESHOLD,default=8" validate:"gte=0"`
	RearmPending           bool          `env:"REARM_PENDING,default=true"`
	SendPermissionGranted  bool          `env:"SEND_PERMISSION_GRANTED,default=true"`
	PlatformVersion        int           `env:"PLATFORM_VERSION,default=0" validate:"gte=0"`
	ExactTimingFromVersion int           `env:"EXACT_TIMING_FROM_VERSION,default=33" validate:"gte=0"`
	DeliveryDriver         string        `env:"DELIVERY_DRIVER,default=log" validate:"oneof=log http"`
	DeliveryExactTiming    bool          `env:"DELIVERY_EXACT_TIMING,default=true"`
	GatewayURL             string        `env:"GATEWAY_URL"`
	GatewaySecret          string        `env:"GATEWAY_SECRET"`
	GatewayTimeout         time.Duration `env:"GATEWAY_TIMEOUT,default=30s" validate:"gt=0"`
	GatewayRatePerSecond   float64       `env:"GATEWAY_RATE_PER_SECOND,default=0" validate:"gte=0"`
	GatewayBurst           int           `env:"GATEWAY_BURST,default=1" validate:"gte=1"`
}

// LoadConfig reads an optional .env file, then the environment, then validates.
func LoadConfig(dotenvFiles ...string) (Config, error) {
	if err := godotenv.Load(dotenvFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("%w: %v", apperr.ErrInvalidConfig, err)
	}
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("%w: %v", apperr.ErrInvalidConfig, err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrInvalidConfig, err)
	}
	if c.DeliveryDriver == DriverHTTP {
		if err := validate.Var(c.GatewayURL, "required,url"); err != nil {
			return fmt.Errorf("%w: GATEWAY_URL is required for the http driver: %v", apperr.ErrInvalidConfig, err)
		}
	}
	return nil
}

// Warnings lists settings that are valid but probably unintended.
func (c Config) Warnings() []string {
	var warnings []string
	if !c.SendPermissionGranted {
		warnings = append(warnings, "SEND_PERMISSION_GRANTED=false: every create will be refused")
	}
	if c.DeliveryDriver == DriverLog {
		warnings = append(warnings, "DELIVERY_DRIVER=log: messages are logged, never sent")
	}
	if c.DeliveryDriver == DriverHTTP && c.GatewaySecret == "" {
		warnings = append(warnings, "GATEWAY_SECRET is empty: gateway requests are signed with an empty key")
	}
	if c.ExactTimingPolicy().Applies() && !c.DeliveryExactTiming {
		warnings = append(warnings, "exact timing is required on this platform but DELIVERY_EXACT_TIMING=false")
	}
	return warnings
}

func (c Config) ExactTimingPolicy() runtime.ExactTimingPolicy {
	return runtime.ExactTimingPolicy{
		PlatformVersion:     c.PlatformVersion,
		RequiredFromVersion: c.ExactTimingFromVersion,
	}
}

func (c Config) GatewayConfig() delivery.GatewayConfig {
	return delivery.GatewayConfig{
		URL:           c.GatewayURL,
		Secret:        c.GatewaySecret,
		Timeout:       c.GatewayTimeout,
		RatePerSecond: c.GatewayRatePerSecond,
		Burst:         c.GatewayBurst,
	}
}
