// Package fuzztests holds go-fuzz targets for the bignum engine and its
// wire encoding. Run one with, for example:
//
//	go test ./internal/fuzz -run=^$ -fuzz=FuzzDivMod -fuzztime=60s
package fuzztests
