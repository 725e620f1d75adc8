package statusview

import (
	"log"
	"os"
	"strings"
)

type endpointSource int

const (
	esCommandLine endpointSource = iota
	esEndpointFile
	esDefault
)

const defaultEndpoint string = "http://localhost:8080"

var endpointFilePath = "/etc/piclock/endpoint"

func getEndpoint(commandLineEndpoint string) (string, endpointSource) {
	// If the endpoint has been specified on the command line then go with it
	if commandLineEndpoint != "" {
		return commandLineEndpoint, esCommandLine
	}

	// Now try the endpoint file
	endpointFileData, err := os.ReadFile(endpointFilePath)
	if err != nil {
		// It doesn't exist
		return defaultEndpoint, esDefault
	}

	endpoint := strings.TrimSpace(string(endpointFileData))
	if endpoint == "" {
		return defaultEndpoint, esDefault
	}

	return endpoint, esEndpointFile
}

func logEndpointDetection(endpoint string, src endpointSource) {
	switch src {
	case esEndpointFile:
		log.Printf("Using endpoint '%s' from the endpoint file.", endpoint)
	case esCommandLine:
		log.Printf("Using endpoint '%s' from the command line.", endpoint)
	case esDefault:
		log.Printf("Using endpoint '%s' (default).", endpoint)
	}
}
