package ibex

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ApiUrl       string `envconfig:"IBEX_API_URL" required:"true"`
	RefreshToken string `envconfig:"IBEX_REFRESH_TOKEN" required:"true"`
	BptId        string `envconfig:"IBEX_BPT_ID" required:"true"`
	WebhookUrl   string `envconfig:"WEBHOOK_URL" required:"true"`
}

func LoadConfig() (c *Config, err error) {
	c = &Config{}
	err = envconfig.Process("", c)
	if err != nil {
		return nil, err
	}
	return c, nil
}
