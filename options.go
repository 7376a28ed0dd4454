package jsonlink

import "github.com/viant/jsonlink/parse"

// MemberPolicy controls how input members absent from the description
// are handled.
type MemberPolicy int

const (
	IgnoreUnknown MemberPolicy = iota
	ErrorOnUnknown
)

// Options defines runtime behavior for a parse or serialize call.
type Options struct {
	Trust      Trust
	Whitespace Whitespace
	Comments   Comments
	EightBit   EightBitMode
	Members    MemberPolicy

	// Path addresses a sub-document to bind instead of the root.
	Path string
}

func (o Options) policy() parse.Policy {
	return parse.Policy{Trust: o.Trust, Whitespace: o.Whitespace, Comments: o.Comments}
}

// Option mutates runtime options.
type Option interface{ apply(*Options) }

type optionFn func(*Options)

func (o optionFn) apply(opts *Options) { o(opts) }

func WithTrust(trust Trust) Option {
	return optionFn(func(o *Options) { o.Trust = trust })
}

func WithWhitespace(whitespace Whitespace) Option {
	return optionFn(func(o *Options) { o.Whitespace = whitespace })
}

func WithComments(comments Comments) Option {
	return optionFn(func(o *Options) { o.Comments = comments })
}

func WithEightBitMode(mode EightBitMode) Option {
	return optionFn(func(o *Options) { o.EightBit = mode })
}

func WithMemberPolicy(policy MemberPolicy) Option {
	return optionFn(func(o *Options) { o.Members = policy })
}

func WithPath(path string) Option {
	return optionFn(func(o *Options) { o.Path = path })
}

func resolveOptions(opts []Option) Options {
	var cfg Options
	for _, opt := range opts {
		opt.apply(&cfg)
	}
	return cfg
}
