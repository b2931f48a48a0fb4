// Package logger records what the interpreter did, one JSON object per
// processed line.
package logger
