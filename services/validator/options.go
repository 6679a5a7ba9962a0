package validator

type Options struct {
	verifier     SignatureVerifier
	strategy     SelectionStrategy
	allowZeroFee *bool
}

// Option is a function that sets some option on the Options struct
type Option func(*Options)

func NewDefaultOptions() *Options {
	return &Options{
		verifier: ECDSAVerifier{},
	}
}

func ProcessOptions(opts ...Option) *Options {
	options := NewDefaultOptions()
	for _, o := range opts {
		o(options)
	}

	return options
}

// WithSignatureVerifier replaces the ECDSA signature check
func WithSignatureVerifier(verifier SignatureVerifier) Option {
	return func(o *Options) {
		if verifier != nil {
			o.verifier = verifier
		}
	}
}

// WithSelectionStrategy overrides ledger_selectionStrategy
func WithSelectionStrategy(strategy SelectionStrategy) Option {
	return func(o *Options) {
		o.strategy = strategy
	}
}

// WithAllowZeroFee overrides ledger_allowZeroFee
func WithAllowZeroFee(allow bool) Option {
	return func(o *Options) {
		o.allowZeroFee = &allow
	}
}
