package infra

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"auromart/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const s3Scheme = "s3://"

var ErrInvoiceNotStored = errors.New("invoice PDF not found in store")

// StoredPDF tells a caller how to serve a saved PDF: either a local Path to
// stream or a URL to redirect to.
type StoredPDF struct {
	Path string
	URL  string
}

// InvoiceStore persists rendered invoice PDFs. Save returns the location kept
// in Invoice.PDFURL; Resolve turns that location back into something servable.
type InvoiceStore interface {
	Save(ctx context.Context, name string, pdf []byte) (string, error)
	Resolve(ctx context.Context, location string) (*StoredPDF, error)
}

// NewInvoiceStore picks the backend from INVOICE_STORAGE.
func NewInvoiceStore(ctx context.Context, cfg *config.Config) (InvoiceStore, error) {
	switch cfg.InvoiceStorage {
	case "", "local":
		return NewLocalInvoiceStore(cfg.PDFStoragePath), nil
	case "s3":
		return NewS3InvoiceStore(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown INVOICE_STORAGE %q", cfg.InvoiceStorage)
	}
}

// ── Local directory ───────────────────────────────────────────────────────────

type LocalInvoiceStore struct {
	dir string
}

func NewLocalInvoiceStore(dir string) *LocalInvoiceStore {
	return &LocalInvoiceStore{dir: dir}
}

func (s *LocalInvoiceStore) Save(_ context.Context, name string, pdf []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("invoice store: create dir: %w", err)
	}
	path := filepath.Join(s.dir, filepath.Base(name))
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return "", fmt.Errorf("invoice store: write: %w", err)
	}
	return path, nil
}

// Resolve refuses locations outside the storage directory.
func (s *LocalInvoiceStore) Resolve(_ context.Context, location string) (*StoredPDF, error) {
	rel, err := filepath.Rel(s.dir, location)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, ErrInvoiceNotStored
	}
	if _, err := os.Stat(location); err != nil {
		return nil, ErrInvoiceNotStored
	}
	return &StoredPDF{Path: location}, nil
}

// ── S3 ────────────────────────────────────────────────────────────────────────

type S3InvoiceStore struct {
	bucket    string
	client    *s3.Client
	presigner *s3.PresignClient
	expiry    time.Duration
}

// NewS3InvoiceStore loads credentials from the default AWS chain. S3_ENDPOINT
// switches to path-style addressing for MinIO and similar servers.
func NewS3InvoiceStore(ctx context.Context, cfg *config.Config) (*S3InvoiceStore, error) {
	if cfg.S3Bucket == "" {
		return nil, errors.New("S3_BUCKET is required when INVOICE_STORAGE=s3")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3Region))
	if err != nil {
		return nil, fmt.Errorf("invoice store: load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3InvoiceStore{
		bucket:    cfg.S3Bucket,
		client:    client,
		presigner: s3.NewPresignClient(client),
		expiry:    15 * time.Minute,
	}, nil
}

func (s *S3InvoiceStore) Save(ctx context.Context, name string, pdf []byte) (string, error) {
	key := "invoices/" + filepath.Base(name)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(pdf),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return "", fmt.Errorf("invoice store: put object: %w", err)
	}
	return s3Scheme + s.bucket + "/" + key, nil
}

func (s *S3InvoiceStore) Resolve(ctx context.Context, location string) (*StoredPDF, error) {
	bucket, key, ok := parseS3Location(location)
	if !ok || bucket != s.bucket {
		return nil, ErrInvoiceNotStored
	}
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return nil, fmt.Errorf("invoice store: presign: %w", err)
	}
	return &StoredPDF{URL: req.URL}, nil
}

func parseS3Location(location string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(location, s3Scheme)
	if !found {
		return "", "", false
	}
	bucket, key, ok = strings.Cut(rest, "/")
	return bucket, key, ok && bucket != "" && key != ""
}
