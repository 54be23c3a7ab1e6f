package aws

import (
	"bytes"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/rs/zerolog/log"
)

// Client mirrors state files to an S3 bucket so a host with ephemeral disk
// can restore the collections after a restart. Implements store.Mirror.
type Client struct {
	session    *session.Session
	bucket     string
	region     string
	uploader   *s3manager.Uploader
	downloader *s3manager.Downloader
}

func NewClient(region, bucket string) *Client {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create AWS session")
	}

	log.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("AWS session created successfully")

	return &Client{
		session:    sess,
		bucket:     bucket,
		region:     region,
		uploader:   s3manager.NewUploader(sess),
		downloader: s3manager.NewDownloader(sess),
	}
}

func (c *Client) Upload(name string, data []byte) error {
	key := "state/" + name

	_, err := c.uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to S3: %w", name, err)
	}

	log.Info().
		Str("bucket", c.bucket).
		Str("key", key).
		Int("content_size", len(data)).
		Msg("State file mirrored to S3")

	return nil
}

func (c *Client) Download(name string) ([]byte, error) {
	key := "state/" + name

	buf := aws.NewWriteAtBuffer(nil)
	_, err := c.downloader.Download(buf, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download %s from S3: %w", name, err)
	}

	return buf.Bytes(), nil
}
