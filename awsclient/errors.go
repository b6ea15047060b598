package awsclient

import (
	"errors"
	"net"

	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/ruteri/halow-dashboard/interfaces"
)

// Error codes meaning the service could not be reached or our credentials
// could not be resolved or were rejected.
var unavailableCodes = map[string]bool{
	"NoCredentialProviders":       true,
	"SharedCredsLoad":             true,
	"EC2RoleRequestError":         true,
	"CredentialsEndpointError":    true,
	"RequestError":                true,
	"RequestCanceled":             true,
	"ResponseTimeout":             true,
	"ServiceUnavailable":          true,
	"UnrecognizedClientException": true,
	"InvalidClientTokenId":        true,
	"InvalidSignatureException":   true,
	"MissingAuthenticationToken":  true,
	"ExpiredToken":                true,
	"ExpiredTokenException":       true,
}

// Error codes meaning the caller is authenticated but not permitted.
var authCodes = map[string]bool{
	"AccessDenied":          true,
	"AccessDeniedException": true,
	"UnauthorizedOperation": true,
	"UnauthorizedException": true,
}

// Kind classifies an error returned by the AWS SDK.
func Kind(err error) interfaces.ErrorKind {
	var aerr awserr.Error
	if errors.As(err, &aerr) {
		switch {
		case unavailableCodes[aerr.Code()]:
			return interfaces.KindUnavailable
		case authCodes[aerr.Code()]:
			return interfaces.KindAuth
		}
		return interfaces.KindOther
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return interfaces.KindUnavailable
	}
	return interfaces.KindOther
}

// Wrap converts an AWS SDK error into an *interfaces.UpstreamError.
func Wrap(service, op string, err error) error {
	if err == nil {
		return nil
	}
	return &interfaces.UpstreamError{
		Service: service,
		Op:      op,
		Kind:    Kind(err),
		Err:     err,
	}
}
