// Package utils provides small helpers shared across notevault: the HTTP
// client used by the object gateway adapter and the id generator.
package utils
