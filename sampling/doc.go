// Package sampling decides, per operation, whether full diagnostic detail is
// kept.
//
// A Sampler is any type that maps an operation context to an immutable
// Decision. Four samplers are provided: Probabilistic draws against a fixed
// rate, Conditional forces sampling when a predicate matches and delegates
// otherwise, PerSource routes to a sampler by source key, and Adaptive
// self-tunes its rate toward a target over rolling adjustment windows. All
// samplers are safe for concurrent use.
package sampling
