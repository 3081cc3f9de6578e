package translator

import (
	"fmt"

	"whisparr/internal/services"
)

// Provider identifies a supported LLM binding. Unknown names are rejected
// when the translator is constructed, not on first use.
type Provider int

const (
	ProviderOpenAI Provider = iota
	ProviderAnthropic
)

// ParseProvider maps a configured provider name onto the enum.
func ParseProvider(name string) (Provider, error) {
	switch name {
	case "openai":
		return ProviderOpenAI, nil
	case "anthropic":
		return ProviderAnthropic, nil
	default:
		return 0, services.Wrap(services.ErrUnsupportedProvider, "translator", "parse provider",
			fmt.Sprintf("unsupported provider %q", name), nil)
	}
}

func (p Provider) String() string {
	switch p {
	case ProviderOpenAI:
		return "openai"
	case ProviderAnthropic:
		return "anthropic"
	default:
		return fmt.Sprintf("provider(%d)", int(p))
	}
}

// DefaultModel returns the model used when configuration leaves it blank.
func (p Provider) DefaultModel() string {
	switch p {
	case ProviderAnthropic:
		return "claude-3-5-sonnet-20241022"
	default:
		return "gpt-4o-mini"
	}
}

// EnvKey names the environment variable holding the provider's API key.
func (p Provider) EnvKey() string {
	switch p {
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return "OPENAI_API_KEY"
	}
}
