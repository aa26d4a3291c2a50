package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/notevault/internal/config"
	"github.com/MKhiriev/notevault/internal/logger"
	"github.com/MKhiriev/notevault/internal/utils"
)

// httpObjectStore talks to an object gateway exposing
//
//	GET|PUT|DELETE /objects/{key}
//	GET            /objects?prefix=...&continuation-token=...
//	GET            /health
type httpObjectStore struct {
	client *utils.HTTPClient
	prefix string
	logger *logger.Logger
}

type listObjectsResponse struct {
	Objects []struct {
		Key          string    `json:"key"`
		Size         int64     `json:"size"`
		LastModified time.Time `json:"lastModified"`
	} `json:"objects"`
	NextContinuationToken string `json:"nextContinuationToken"`
}

// NewHTTPObjectStore constructs the gateway implementation of [ObjectStore].
// It normalises and validates the base URL from cfg.Endpoint and bounds every
// request by cfg.RequestTimeout.
func NewHTTPObjectStore(cfg config.ClientRemote, log *logger.Logger) (ObjectStore, error) {
	baseURL, err := normalizeBaseURL(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid remote endpoint: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, cfg.RequestTimeout).WithBearerToken(cfg.Token)

	return &httpObjectStore{
		client: client,
		prefix: normalizePrefix(cfg.Prefix),
		logger: log.WithComponent("http_object_store"),
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// objectPath escapes every segment of the prefixed key.
func (h *httpObjectStore) objectPath(key string) string {
	segments := strings.Split(h.prefix+key, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return "/objects/" + strings.Join(segments, "/")
}

func (h *httpObjectStore) Get(ctx context.Context, key string) (Object, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get(h.objectPath(key))
	if err != nil {
		return Object{}, newRemoteError("get", key, classifyTransportError(err), err)
	}
	if err = mapHTTPError("get", key, resp); err != nil {
		return Object{}, err
	}

	return Object{
		Body:        resp.Body(),
		ContentType: resp.Header().Get("Content-Type"),
	}, nil
}

func (h *httpObjectStore) Put(ctx context.Context, key string, body []byte, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetBody(body).
		Put(h.objectPath(key))
	if err != nil {
		return newRemoteError("put", key, classifyTransportError(err), err)
	}
	return mapHTTPError("put", key, resp)
}

func (h *httpObjectStore) Delete(ctx context.Context, key string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Delete(h.objectPath(key))
	if err != nil {
		return newRemoteError("delete", key, classifyTransportError(err), err)
	}

	err = mapHTTPError("delete", key, resp)
	if IsNotFound(err) {
		return nil
	}
	return err
}

func (h *httpObjectStore) List(ctx context.Context, prefix, token string) (ListPage, error) {
	var result listObjectsResponse

	req := h.client.R().
		SetContext(ctx).
		SetQueryParam("prefix", h.prefix+prefix).
		SetResult(&result)
	if token != "" {
		req.SetQueryParam("continuation-token", token)
	}

	resp, err := req.Get("/objects")
	if err != nil {
		return ListPage{}, newRemoteError("list", prefix, classifyTransportError(err), err)
	}
	if err = mapHTTPError("list", prefix, resp); err != nil {
		return ListPage{}, err
	}

	page := ListPage{
		Objects:   make([]ObjectInfo, 0, len(result.Objects)),
		NextToken: result.NextContinuationToken,
	}
	for _, obj := range result.Objects {
		page.Objects = append(page.Objects, ObjectInfo{
			Key:          strings.TrimPrefix(obj.Key, h.prefix),
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}

	return page, nil
}

func (h *httpObjectStore) Ping(ctx context.Context) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/health")
	if err != nil {
		return newRemoteError("ping", "", classifyTransportError(err), err)
	}
	return mapHTTPError("ping", "", resp)
}
