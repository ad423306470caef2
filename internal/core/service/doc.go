// Package service issues and checks tokens on behalf of tokgen commands.
//
// Issuer draws batches of tokens under a rate limit and guarantees every
// token in a batch is distinct. Matcher compares encoded tokens in constant
// time and orders them for display. Both report to a metric.Registry and a
// logger.Logger; either may be nil.
package service
