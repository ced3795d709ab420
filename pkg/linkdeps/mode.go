package linkdeps

import (
	"github.com/matzehuels/linkdeps/pkg/errors"
)

// Mode selects the accumulation policy.
type Mode string

const (
	ModeDevel     Mode = "devel"
	ModePublish   Mode = "publish"
	ModeDeploy    Mode = "deploy"
	ModeDeployMix Mode = "deploy-mix"
	ModeLink      Mode = "link"
)

// Modes lists every supported mode.
var Modes = []Mode{ModeDevel, ModePublish, ModeDeploy, ModeDeployMix, ModeLink}

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidMode, "Unknown mode: %s", s)
}

// Links reports whether the mode materializes local packages.
func (m Mode) Links() bool {
	return m == ModeDevel || m == ModeLink
}

// Writes reports whether the mode produces a manifest to save.
func (m Mode) Writes() bool {
	return m != ModeLink
}
