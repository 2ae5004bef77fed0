package channel

import (
	"github.com/mitchellh/mapstructure"
)

// queryArgs are the arguments of the three get methods.
type queryArgs struct {
	Query               string `mapstructure:"query"`
	Phone               string `mapstructure:"phone"`
	Email               string `mapstructure:"email"`
	WithThumbnails      bool   `mapstructure:"withThumbnails"`
	PhotoHighResolution bool   `mapstructure:"photoHighResolution"`
	OrderByGivenName    bool   `mapstructure:"orderByGivenName"`
	LocalizedLabels     *bool  `mapstructure:"androidLocalizedLabels"`
}

type avatarArgs struct {
	Contact             map[string]any `mapstructure:"contact"`
	PhotoHighResolution bool           `mapstructure:"photoHighResolution"`
}

type formArgs struct {
	Contact         map[string]any `mapstructure:"contact"`
	LocalizedLabels *bool          `mapstructure:"androidLocalizedLabels"`
}

// identified is validated before writes that target an existing contact.
type identified struct {
	Identifier string `validate:"required,numeric"`
}

// decodeArgs decodes raw into out. Scalars are converted loosely, so "true"
// and 1 both decode into a bool.
func decodeArgs(raw map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return &Error{Code: ErrorCodeInvalidArguments, Message: err.Error(), Err: err}
	}
	return nil
}
