package trustedemployee

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	EnvProduction = "production"
	EnvTesting    = "testing"

	productionURL = "https://secure.trustedemployees.com"
	testingURL    = "https://demo.trustedemployees.com"

	submitPath   = "/BatchScreensXML.cfm"
	statusPath   = "/ReportStatusFetch.cfm"
	downloadPath = "/ReportPDFFetch.cfm"

	accountLen = 6
)

type Config struct {
	// Environment selects the vendor deployment: production or testing.
	// Testing is the default.
	Environment string `yaml:"environment"`
	// ServerURL overrides the environment base URL when set.
	ServerURL string `yaml:"server_url"`

	PartnerID   string `yaml:"partner_id"`
	Password    string `yaml:"password"`
	Account     string `yaml:"account"`
	PostBackURL string `yaml:"postback_url"`

	Timeout  time.Duration `yaml:"timeout"`
	RetryMax int           `yaml:"retry_max"`
}

func (c Config) baseURL() (string, error) {
	if c.ServerURL != "" {
		return strings.TrimRight(c.ServerURL, "/"), nil
	}

	switch c.Environment {
	case EnvProduction:
		return productionURL, nil
	case EnvTesting, "":
		return testingURL, nil
	}

	return "", errors.Errorf("invalid environment: %s", c.Environment)
}
