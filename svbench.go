// Package svbench scores structural-variant calls against a truth set.
package svbench

const Version = "0.1.0"
