package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/pkg/errors"
)

type OSSStore struct {
	Client     *oss.Client
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	Prefix     string
	PublicBase string
}

func NewOSSStoreFromEnv(prefix string) (*OSSStore, error) {
	endpoint := getEnv("ALI_OSS_ENDPOINT")
	ak := getEnv("ALI_OSS_ACCESS_KEY")
	sk := getEnv("ALI_OSS_SECRET_KEY")
	sts := getEnv("ALI_OSS_SECURITY_TOKEN")
	bucketName := getEnv("ALI_OSS_BUCKET")
	if endpoint == "" || ak == "" || sk == "" || bucketName == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}

	var (
		client *oss.Client
		err    error
	)
	if sts != "" {
		client, err = oss.New(endpoint, ak, sk, oss.SecurityToken(sts))
	} else {
		client, err = oss.New(endpoint, ak, sk)
	}
	if err != nil {
		return nil, errors.Wrap(err, "oss.New")
	}

	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, errors.Wrap(err, "client.Bucket")
	}

	if loc, err := client.GetBucketLocation(bucketName); err != nil {
		if se, ok := err.(oss.ServiceError); ok && se.StatusCode == 403 {
			log.Printf("[OSS] skip location check (AccessDenied) bucket=%s", bucketName)
		} else {
			return nil, errors.Wrap(err, "verify bucket")
		}
	} else {
		log.Printf("[OSS] bucket %s location: %s", bucketName, loc)
	}

	return &OSSStore{
		Client:     client,
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: bucketName,
		Prefix:     strings.Trim(prefix, "/"),
		PublicBase: strings.TrimRight(getEnv("ALI_OSS_PUBLIC_BASE"), "/"),
	}, nil
}

func (s *OSSStore) Kind() string { return "oss" }

func (s *OSSStore) objectKey(key string) string {
	if s.Prefix == "" {
		return key
	}
	return s.Prefix + "/" + strings.TrimLeft(key, "/")
}

func (s *OSSStore) Put(ctx context.Context, key string, r io.Reader, contentType string) error {
	if key == "" {
		return fmt.Errorf("empty key")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(contentType),
	}
	if strings.HasPrefix(key, PublicPrefix) {
		opts = append(opts,
			oss.ContentDisposition("inline"),
			oss.CacheControl("public, max-age=31536000, immutable"))
	}
	return s.Bucket.PutObject(s.objectKey(key), r, opts...)
}

func (s *OSSStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	rc, err := s.Bucket.GetObject(s.objectKey(key), oss.WithContext(ctx))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rc, nil
}

func (s *OSSStore) Delete(ctx context.Context, key string) error {
	err := s.Bucket.DeleteObject(s.objectKey(key), oss.WithContext(ctx))
	if err != nil && isNotFound(err) {
		return ErrNotFound
	}
	return err
}

// URL publik hanya untuk key di bawah public/.
func (s *OSSStore) URL(key string) string {
	if key == "" || !strings.HasPrefix(key, PublicPrefix) {
		return ""
	}
	k := s.objectKey(key)
	if s.PublicBase != "" {
		return s.PublicBase + "/" + k
	}
	end := strings.TrimPrefix(strings.TrimPrefix(s.Endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, end, k)
}

func isNotFound(err error) bool {
	if e, ok := err.(oss.ServiceError); ok {
		return e.StatusCode == 404
	}
	return false
}
