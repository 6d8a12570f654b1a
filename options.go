package dartrie

// defaultTailThreshold is the minimal-prefix collapse threshold used
// when a build does not override it: collapse whenever a subtree
// becomes single-key with a remaining suffix of at least one code
// unit. Higher thresholds leave more of the structure in the array,
// trading tail-store savings for query speed.
const defaultTailThreshold = 1

type buildConfig struct {
	tailThreshold int
	codeOrder     CodeOrder
}

// BuildOption configures a Trie or MinimalPrefixTrie build.
type BuildOption func(*buildConfig)

// WithCodeOrder selects the character-to-code assignment order. The
// default is CodeOrderFrequency.
func WithCodeOrder(order CodeOrder) BuildOption {
	return func(c *buildConfig) { c.codeOrder = order }
}

// WithTailThreshold overrides MinimalPrefixTrie's tail-collapse
// threshold: a subtree collapses into an out-of-line tail only once it
// holds exactly one key whose remaining suffix length is at least n.
// It has no effect on Trie builds, which never collapse.
func WithTailThreshold(n int) BuildOption {
	return func(c *buildConfig) { c.tailThreshold = n }
}

func newBuildConfig(opts []BuildOption) buildConfig {
	cfg := buildConfig{tailThreshold: 0, codeOrder: CodeOrderFrequency}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
