//go:build !js && !wasip1

package store

const hasDocuments = true
