package utils

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/tedchain/inputparser/types"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
}

// ParseParserConfig parses and validates a ParserConfig from JSON. Missing
// numeric limits fall back to the defaults.
func ParseParserConfig(data []byte) (*types.ParserConfig, error) {
	config := types.DefaultParserConfig()

	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse parser config: %w", err)
	}

	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if config.MaxPaymentRequestSize == 0 {
		config.MaxPaymentRequestSize = types.DefaultMaxPaymentRequestSize
	}
	if config.StreamChunkSize == 0 {
		config.StreamChunkSize = types.DefaultStreamChunkSize
	}

	return config, nil
}

// ValidatePaymentIntent checks the struct-level invariants of an intent
// before it is handed to a sink.
func ValidatePaymentIntent(intent *types.PaymentIntent) error {
	if intent == nil {
		return fmt.Errorf("payment intent is nil")
	}
	if err := validate.Struct(intent); err != nil {
		return fmt.Errorf("invalid payment intent: %w", err)
	}

	var total int64
	for i, o := range intent.Outputs {
		if o.Amount > types.MaxMoney-total {
			return fmt.Errorf("invalid payment intent: output %d exceeds maximum money", i)
		}
		total += o.Amount
	}
	return nil
}

// SerializePaymentIntent renders an intent as JSON for callers that hand it
// across a process boundary.
func SerializePaymentIntent(intent *types.PaymentIntent) ([]byte, error) {
	if err := ValidatePaymentIntent(intent); err != nil {
		return nil, err
	}
	return json.Marshal(intent)
}
