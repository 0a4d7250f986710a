package main

const (
	Version     = "v1.1.0"
	ReleaseDate = "2026-08-25"
)
