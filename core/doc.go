// Package core contains the canonical SDK domain entities, collaborator
// contracts, and the session coordinator that orchestrates credential
// lifecycle around authenticated requests. Transport and storage adapters
// depend on this package; core must not depend on them.
package core
