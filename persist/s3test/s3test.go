// Package s3test provides S3 clients for tests: an in-process gofakes3
// server by default, or a real endpoint when PARAMTREE_TEST_S3_ENDPOINT
// is set.
package s3test

import (
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/johannesboyne/gofakes3"
	"github.com/johannesboyne/gofakes3/backend/s3mem"
)

// Client returns an S3 client and the name of an empty bucket it can
// use. Servers started for the test are stopped when it finishes.
func Client(t testing.TB) (*s3.S3, string) {
	t.Helper()
	var client *s3.S3
	if endpoint := os.Getenv("PARAMTREE_TEST_S3_ENDPOINT"); endpoint != "" {
		config := aws.Config{
			Credentials: credentials.NewStaticCredentials(
				getEnv(t, "AWS_ACCESS_KEY_ID"),
				getEnv(t, "AWS_SECRET_ACCESS_KEY"),
				os.Getenv("AWS_SESSION_TOKEN"),
			),
			Endpoint:         aws.String(endpoint),
			Region:           aws.String(getEnvOrDefault("AWS_REGION", "not-using-AWS")),
			S3ForcePathStyle: aws.Bool(true),
		}
		sess, err := session.NewSession(&config)
		if err != nil {
			t.Fatalf("s3 session: %v", err)
		}
		client = s3.New(sess)
	} else {
		faker := gofakes3.New(s3mem.New())
		ts := httptest.NewServer(faker.Server())
		t.Cleanup(ts.Close)
		sess, err := session.NewSession(&aws.Config{
			Credentials: credentials.NewStaticCredentials(
				"TEST-ACCESSKEYID",
				"TEST-SECRETACCESSKEY",
				"",
			),
			Endpoint:         aws.String(ts.URL),
			Region:           aws.String("ca-west-1"),
			DisableSSL:       aws.Bool(true),
			S3ForcePathStyle: aws.Bool(true),
		})
		if err != nil {
			t.Fatalf("s3 session: %v", err)
		}
		client = s3.New(sess)
	}

	bucketName := randBucketName(t)
	_, err := client.CreateBucket(&s3.CreateBucketInput{
		Bucket: &bucketName,
	})
	if err != nil {
		t.Fatalf("create bucket %s: %v", bucketName, err)
	}
	return client, bucketName
}

func getEnv(t testing.TB, key string) string {
	res := os.Getenv(key)
	if res == "" {
		t.Fatalf("environment '%s' unset", key)
	}
	return res
}

func getEnvOrDefault(key, def string) string {
	res := os.Getenv(key)
	if res == "" {
		return def
	}
	return res
}

func randBucketName(t testing.TB) string {
	i, err := rand.Int(rand.Reader, big.NewInt(math.MaxUint32))
	if err != nil {
		t.Fatalf("rand: %v", err)
	}
	return fmt.Sprintf("paramtree-%s", i)
}
