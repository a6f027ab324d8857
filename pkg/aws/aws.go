package aws

import (
	"context"
	"net"
	"net/http"

	// Packages
	aws "github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	config "github.com/aws/aws-sdk-go-v2/config"
	credentials "github.com/aws/aws-sdk-go-v2/credentials"
	s3 "github.com/aws/aws-sdk-go-v2/service/s3"
	wagon "github.com/mutablelogic/go-s3wagon"
	otelaws "go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Client is an object store for a single S3 bucket
type Client struct {
	bucket string
	region string
	s3     S3API
}

var _ wagon.Store = (*Client)(nil)

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// Region used for requests when no other region can be determined
	defaultRegion = "us-east-1"
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns a store for a bucket. SDK retries are disabled, so a failed
// request is reported immediately.
func New(ctx context.Context, bucket string, opts ...Opt) (*Client, error) {
	self := new(Client)
	opt, err := applyOpts(opts...)
	if err != nil {
		return nil, err
	}

	// Load the default configuration
	loadOpts := []func(*config.LoadOptions) error{
		config.WithHTTPClient(opt.httpClient()),
		config.WithRetryer(func() aws.Retryer {
			return aws.NopRetryer{}
		}),
	}
	if opt.accessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opt.accessKey, opt.secretKey, ""),
		))
	}
	if opt.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opt.region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, wagon.NewError(wagon.ErrConnection, "connect", bucket, err)
	} else if cfg.Region == "" {
		cfg.Region = defaultRegion
	}

	// Trace each API call
	if opt.tracerProvider != nil {
		otelaws.AppendMiddlewares(&cfg.APIOptions, otelaws.WithTracerProvider(opt.tracerProvider))
	}

	// Determine the region from the bucket location
	if opt.region == "" && opt.endpoint == "" {
		region, err := bucketRegion(ctx, s3.NewFromConfig(cfg), bucket)
		if err != nil {
			return nil, err
		} else if region != "" {
			cfg.Region = region
		}
	}

	// Create the S3 client
	self.bucket = bucket
	self.region = cfg.Region
	self.s3 = s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired

		// Path-style requests for S3-compatible services
		if opt.endpoint != "" {
			o.BaseEndpoint = aws.String(opt.endpoint)
			o.UsePathStyle = true
		}
	})

	// Return success
	return self, nil
}

// NewWithClient returns a store over an existing client
func NewWithClient(client S3API, bucket, region string) *Client {
	return &Client{bucket: bucket, region: region, s3: client}
}

// Close the store. The underlying HTTP connections are released when
// idle, so there is nothing to do.
func (c *Client) Close() error {
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Bucket returns the bucket name
func (c *Client) Bucket() string {
	return c.bucket
}

// Region returns the region of the bucket
func (c *Client) Region() string {
	return c.region
}

// S3 returns the underlying client
func (c *Client) S3() S3API {
	return c.s3
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (o *opt) httpClient() *awshttp.BuildableClient {
	client := awshttp.NewBuildableClient()
	if o.timeout > 0 {
		client = client.WithDialerOptions(func(d *net.Dialer) {
			d.Timeout = o.timeout
		})
	}
	return client.WithTransportOptions(func(tr *http.Transport) {
		if o.readTimeout > 0 {
			tr.ResponseHeaderTimeout = o.readTimeout
		}
		if o.proxy != nil {
			tr.Proxy = proxyFunc(o.proxy, o.nonProxyHosts)
		}
	})
}
