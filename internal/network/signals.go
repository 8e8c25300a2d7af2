package network

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// ProfileSignals are the optional, loosely-typed profile fields the engine
// mines from a contact's metadata bag. Missing fields keep their zero value
// and downstream scoring falls back to documented neutral defaults.
type ProfileSignals struct {
	CareerYears   float64 `mapstructure:"career_years"`
	Followers     int     `mapstructure:"followers"`
	Publications  int     `mapstructure:"publications"`
	Talks         int     `mapstructure:"talks"`
	Awards        int     `mapstructure:"awards"`
	MediaMentions int     `mapstructure:"media_mentions"`
	Company       string  `mapstructure:"company"`
	CompanySize   string  `mapstructure:"company_size"`
	Education     string  `mapstructure:"education"`
	Exits         int     `mapstructure:"exits"`
	LinkedIn      string  `mapstructure:"linkedin"`
	Email         string  `mapstructure:"email"`
	Website       string  `mapstructure:"website"`
}

// Signals decodes the metadata bag into typed signals. An empty bag yields
// zero-valued signals, never an error.
func (ct *Contact) Signals() (*ProfileSignals, error) {
	signals := &ProfileSignals{}
	if len(ct.Metadata) == 0 {
		return signals, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           signals,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("building metadata decoder: %w", err)
	}

	if err := decoder.Decode(ct.Metadata); err != nil {
		return nil, fmt.Errorf("decoding metadata for contact %s: %w", ct.ID, err)
	}
	return signals, nil
}
