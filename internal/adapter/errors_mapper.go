package adapter

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/aws/smithy-go"
	"github.com/go-resty/resty/v2"
)

// mapHTTPError converts a non-2xx gateway response into a [*RemoteError].
// It returns nil for 2xx responses.
func mapHTTPError(op, key string, resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}
	detail := fmt.Errorf("http %d: %s", resp.StatusCode(), body)

	switch resp.StatusCode() {
	case http.StatusNotFound:
		return newRemoteError(op, key, CategoryNotFound, fmt.Errorf("%w: %w", ErrObjectNotFound, detail))
	case http.StatusUnauthorized:
		return newRemoteError(op, key, CategoryAuth, detail)
	case http.StatusForbidden:
		if strings.Contains(strings.ToLower(body), "cors") {
			return newRemoteError(op, key, CategoryCORS, detail)
		}
		return newRemoteError(op, key, CategoryAuth, detail)
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return newRemoteError(op, key, CategoryTimeout, detail)
	case http.StatusBadGateway, http.StatusServiceUnavailable:
		return newRemoteError(op, key, CategoryNetwork, detail)
	default:
		return newRemoteError(op, key, CategoryUnknown, detail)
	}
}

// mapS3Error converts an aws-sdk-go-v2 error into a [*RemoteError].
func mapS3Error(op, key string, err error) error {
	if err == nil {
		return nil
	}
	return newRemoteError(op, key, classifyS3Error(err), s3ErrorDetail(err))
}

func classifyS3Error(err error) Category {
	if errors.Is(err, context.DeadlineExceeded) {
		return CategoryTimeout
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "NoSuchBucket":
			return CategoryNotFound
		case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch", "ExpiredToken", "InvalidToken", "Forbidden":
			return CategoryAuth
		case "CORSResponse":
			return CategoryCORS
		case "RequestTimeout", "RequestTimeTooSkewed":
			return CategoryTimeout
		}
	}

	var statusErr interface{ HTTPStatusCode() int }
	if errors.As(err, &statusErr) {
		switch statusErr.HTTPStatusCode() {
		case http.StatusNotFound:
			return CategoryNotFound
		case http.StatusUnauthorized, http.StatusForbidden:
			return CategoryAuth
		case http.StatusRequestTimeout, http.StatusGatewayTimeout:
			return CategoryTimeout
		}
	}

	return classifyTransportError(err)
}

func s3ErrorDetail(err error) error {
	category := classifyS3Error(err)
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		err = fmt.Errorf("%s: %s", apiErr.ErrorCode(), apiErr.ErrorMessage())
	}
	if category == CategoryNotFound {
		return fmt.Errorf("%w: %w", ErrObjectNotFound, err)
	}
	return err
}

// classifyTransportError classifies errors raised below the protocol level.
func classifyTransportError(err error) Category {
	if errors.Is(err, context.DeadlineExceeded) {
		return CategoryTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return CategoryTimeout
		}
		return CategoryNetwork
	}

	// a call cancelled from outside never reached a verdict
	if errors.Is(err, context.Canceled) {
		return CategoryNetwork
	}

	return CategoryUnknown
}
