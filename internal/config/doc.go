// Package config manages user-level settings stored at
// ~/.shopify-pipeline/config.yaml. Values can also come from
// SHOPIFY_PIPELINE_* environment variables and command-line flags bound by
// the cli package; flags win over the environment, which wins over the file.
package config
