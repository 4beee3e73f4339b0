package observability

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"viralcast/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
)

// MetricsProvider manages OpenTelemetry metrics for the posting engine
type MetricsProvider struct {
	config        *config.Config
	meterProvider *sdkmetric.MeterProvider
	meter         metric.Meter
	initialized   bool
	recording     bool
	mu            sync.RWMutex

	// Metric instruments
	deliveryAttemptsCounter metric.Int64Counter
	rotationDurationHist    metric.Float64Histogram
	batchOutcomesCounter    metric.Int64Counter
	eventsPublishedCounter  metric.Int64Counter
}

// NewMetricsProvider creates a new metrics provider
func NewMetricsProvider(cfg *config.Config) *MetricsProvider {
	return &MetricsProvider{
		config: cfg,
	}
}

// Initialize sets up the OpenTelemetry metrics provider
func (mp *MetricsProvider) Initialize(ctx context.Context) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.initialized {
		log.Println("Metrics provider already initialized")
		return nil
	}

	if !mp.config.OTelEnabled {
		log.Println("OpenTelemetry metrics disabled")
		mp.initialized = true
		return nil
	}

	// Create resource with service information
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(mp.config.OTelServiceName),
			attribute.String("environment", mp.config.Environment),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	// Create appropriate exporter based on config
	var exporter sdkmetric.Exporter
	switch mp.config.OTelExporterType {
	case "console":
		exporter, err = stdoutmetric.New()
		if err != nil {
			return fmt.Errorf("failed to create console exporter: %w", err)
		}
		log.Println("Using console metric exporter")

	case "otlp":
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		exporter, err = otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(mp.config.OTelOTLPEndpoint),
			otlpmetricgrpc.WithInsecure(),
		)
		if err != nil {
			return fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		log.Printf("Using OTLP metric exporter: %s", mp.config.OTelOTLPEndpoint)

	case "none":
		log.Println("Metrics export disabled (exporter_type='none')")
		mp.initialized = true
		return nil

	default:
		return fmt.Errorf("unknown exporter type: %s", mp.config.OTelExporterType)
	}

	// Create meter provider with periodic reader
	mp.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(
				exporter,
				sdkmetric.WithInterval(time.Duration(mp.config.OTelExportIntervalMillis)*time.Millisecond),
			),
		),
	)

	// Set as global meter provider
	otel.SetMeterProvider(mp.meterProvider)

	// Get meter for creating instruments
	mp.meter = mp.meterProvider.Meter("viralcast")

	// Create metric instruments
	if err := mp.createInstruments(); err != nil {
		return fmt.Errorf("failed to create instruments: %w", err)
	}

	mp.initialized = true
	mp.recording = true
	log.Println("Metrics provider initialized successfully")
	return nil
}

// createInstruments creates all metric instruments
func (mp *MetricsProvider) createInstruments() error {
	var err error

	mp.deliveryAttemptsCounter, err = mp.meter.Int64Counter(
		DeliveryAttemptsTotal,
		metric.WithDescription("Total number of delivery attempts"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create delivery attempts counter: %w", err)
	}

	mp.rotationDurationHist, err = mp.meter.Float64Histogram(
		RotationDuration,
		metric.WithDescription("Duration of rotation runs in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0, 120.0, 300.0),
	)
	if err != nil {
		return fmt.Errorf("failed to create rotation duration histogram: %w", err)
	}

	mp.batchOutcomesCounter, err = mp.meter.Int64Counter(
		BatchOutcomesTotal,
		metric.WithDescription("Total number of batch runs by outcome"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create batch outcomes counter: %w", err)
	}

	mp.eventsPublishedCounter, err = mp.meter.Int64Counter(
		NATSEventsPublishedTotal,
		metric.WithDescription("Total number of NATS events published"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create events published counter: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the metrics provider
func (mp *MetricsProvider) Shutdown(ctx context.Context) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if mp.meterProvider != nil {
		return mp.meterProvider.Shutdown(ctx)
	}
	return nil
}

// RecordDeliveryAttempt records one delivery attempt. errorCategory is empty
// for successful attempts.
func (mp *MetricsProvider) RecordDeliveryAttempt(platform, result, errorCategory string) {
	if !mp.isEnabled() {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(LabelPlatform, platform),
		attribute.String(LabelResult, result),
	}
	if errorCategory != "" {
		attrs = append(attrs, attribute.String(LabelErrorCategory, errorCategory))
	}

	mp.deliveryAttemptsCounter.Add(context.Background(), 1, metric.WithAttributes(attrs...))
}

// RecordRotationDuration records how long one rotation run took
func (mp *MetricsProvider) RecordRotationDuration(platform string, duration time.Duration) {
	if !mp.isEnabled() {
		return
	}

	mp.rotationDurationHist.Record(context.Background(), duration.Seconds(),
		metric.WithAttributes(
			attribute.String(LabelPlatform, platform),
		),
	)
}

// MeasureRotation returns a function to measure rotation duration
// Usage:
//
//	defer mp.MeasureRotation("tiktok")()
func (mp *MetricsProvider) MeasureRotation(platform string) func() {
	start := time.Now()
	return func() {
		mp.RecordRotationDuration(platform, time.Since(start))
	}
}

// RecordBatchOutcome records a finished batch run by its summary status
func (mp *MetricsProvider) RecordBatchOutcome(status string) {
	if !mp.isEnabled() {
		return
	}

	mp.batchOutcomesCounter.Add(context.Background(), 1,
		metric.WithAttributes(
			attribute.String(LabelStatus, status),
		),
	)
}

// RecordEventPublished records a NATS event being published
func (mp *MetricsProvider) RecordEventPublished(eventType string) {
	if !mp.isEnabled() {
		return
	}

	mp.eventsPublishedCounter.Add(context.Background(), 1,
		metric.WithAttributes(
			attribute.String(LabelEventType, eventType),
		),
	)
}

// isEnabled reports whether instruments exist and may record. Safe on a nil
// provider so callers can record unconditionally.
func (mp *MetricsProvider) isEnabled() bool {
	if mp == nil {
		return false
	}
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	return mp.recording
}

// Global metrics provider instance
var (
	globalMetrics *MetricsProvider
	metricsOnce   sync.Once
)

// InitializeGlobalMetrics initializes the global metrics provider
func InitializeGlobalMetrics(ctx context.Context, cfg *config.Config) error {
	var err error
	metricsOnce.Do(func() {
		globalMetrics = NewMetricsProvider(cfg)
		err = globalMetrics.Initialize(ctx)
	})
	return err
}

// GetMetrics returns the global metrics provider, which may be nil when
// metrics were never initialized
func GetMetrics() *MetricsProvider {
	return globalMetrics
}

// ShutdownGlobalMetrics shuts down the global metrics provider
func ShutdownGlobalMetrics(ctx context.Context) error {
	if globalMetrics != nil {
		return globalMetrics.Shutdown(ctx)
	}
	return nil
}
