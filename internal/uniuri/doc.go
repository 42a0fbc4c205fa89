// Package uniuri generates random identifiers from crypto/rand, used for session ids.
package uniuri
