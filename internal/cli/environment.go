package cli

import (
	"os"
	"strings"

	"github.com/arthur-debert/prefsync/pkg/language"
	"github.com/arthur-debert/prefsync/pkg/logging"
	"github.com/arthur-debert/prefsync/pkg/policy"
)

// Environment variable names
const (
	// EnvPolicy stands in for the platform policy service:
	// "enabled", "disabled", or unset for not configured.
	EnvPolicy = "PREFSYNC_POLICY"

	// EnvCulture is the system UI language display name.
	EnvCulture = "PREFSYNC_CULTURE"

	// EnvParentCulture is the parent display name of the UI language.
	EnvParentCulture = "PREFSYNC_PARENT_CULTURE"
)

// policyFromEnv reads the administrative policy from the environment.
// Anything other than "enabled" or "disabled" means not configured.
func policyFromEnv() policy.Query {
	raw := strings.ToLower(os.Getenv(EnvPolicy))
	return func() policy.State {
		switch raw {
		case "enabled":
			return policy.StateEnabled
		case "disabled":
			return policy.StateDisabled
		case "":
			return policy.StateNotConfigured
		default:
			logger := logging.GetLogger("cli")
			logger.Warn().Str("value", raw).Msg("Unrecognized policy value, treating as not configured")
			return policy.StateNotConfigured
		}
	}
}

// cultureFromEnv reads the system culture used for the fallback language
// match.
func cultureFromEnv() language.Culture {
	return language.Culture{
		DisplayName:       os.Getenv(EnvCulture),
		ParentDisplayName: os.Getenv(EnvParentCulture),
	}
}
