// Package monoapi holds the plumbing shared by the Mono resource clients:
// configuration, the secret key auth header, the Transport abstraction with its
// net/http implementation, the Response envelope and the error taxonomy.
package monoapi
