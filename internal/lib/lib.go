// Package lib holds the adapters that do not belong to a single layer:
// the asset host (media), the identity provider (identity), background jobs
// on Redis (job) and transactional e-mail (email).
package lib
