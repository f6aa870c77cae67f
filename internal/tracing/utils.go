package tracing

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"runtime/debug"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/opentracing/opentracing-go/log"

	"github.com/releasewatch/mailparser/internal/logger"
)

const (
	SpanTagRequestId = "aws-request-id"
	SpanTagBucket    = "s3-bucket"
	SpanTagKey       = "s3-key"
	SpanTagSender    = "sender"
	SpanTagComponent = "component"
)

const (
	SpanTagComponentDynamoRepository = "dynamoRepository"
	SpanTagComponentRest             = "rest"
	SpanTagComponentService          = "service"
	SpanTagComponentLambda           = "lambda"
)

func StartHttpServerTracerSpanWithHeader(ctx context.Context, operationName string, headers http.Header) (context.Context, opentracing.Span) {
	spanCtx, err := opentracing.GlobalTracer().Extract(opentracing.HTTPHeaders, opentracing.HTTPHeadersCarrier(headers))
	if err != nil {
		serverSpan := opentracing.GlobalTracer().StartSpan(operationName)
		return opentracing.ContextWithSpan(ctx, serverSpan), serverSpan
	}

	serverSpan := opentracing.GlobalTracer().StartSpan(operationName, ext.RPCServerOption(spanCtx))
	return opentracing.ContextWithSpan(ctx, serverSpan), serverSpan
}

func StartTracerSpan(ctx context.Context, operationName string) (opentracing.Span, context.Context) {
	serverSpan := opentracing.GlobalTracer().StartSpan(operationName)
	return serverSpan, opentracing.ContextWithSpan(ctx, serverSpan)
}

func setDefaultSpanTags(ctx context.Context, span opentracing.Span) {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		span.SetTag(SpanTagRequestId, lc.AwsRequestID)
	}
}

func SetDefaultServiceSpanTags(ctx context.Context, span opentracing.Span) {
	setDefaultSpanTags(ctx, span)
	TagComponentService(span)
}

func SetDefaultDynamoRepositorySpanTags(ctx context.Context, span opentracing.Span) {
	setDefaultSpanTags(ctx, span)
	TagComponentDynamoRepository(span)
}

func SetDefaultLambdaSpanTags(ctx context.Context, span opentracing.Span) {
	setDefaultSpanTags(ctx, span)
	span.SetTag(SpanTagComponent, SpanTagComponentLambda)
}

func TraceErr(span opentracing.Span, err error, fields ...log.Field) {
	if span == nil || err == nil {
		return
	}
	ext.LogError(span, err, fields...)
}

func LogObjectAsJson(span opentracing.Span, name string, object any) {
	if object == nil {
		span.LogFields(log.String(name, "nil"))
		return
	}
	jsonObject, err := json.Marshal(object)
	if err == nil {
		span.LogFields(log.String(name, string(jsonObject)))
	} else {
		span.LogFields(log.Object(name, object))
	}
}

func TagObject(span opentracing.Span, bucket, key string) {
	if bucket != "" {
		span.SetTag(SpanTagBucket, bucket)
	}
	if key != "" {
		span.SetTag(SpanTagKey, key)
	}
}

func TagSender(span opentracing.Span, sender string) {
	if sender != "" {
		span.SetTag(SpanTagSender, sender)
	}
}

func TagComponentDynamoRepository(span opentracing.Span) {
	span.SetTag(SpanTagComponent, SpanTagComponentDynamoRepository)
}

func TagComponentRest(span opentracing.Span) {
	span.SetTag(SpanTagComponent, SpanTagComponentRest)
}

func TagComponentService(span opentracing.Span) {
	span.SetTag(SpanTagComponent, SpanTagComponentService)
}

func RecoveryWithJaeger(tracer opentracing.Tracer) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				span := tracer.StartSpan("panic-recovery")
				defer span.Finish()

				buf := make([]byte, 4096)
				stackSize := runtime.Stack(buf, false)
				span.LogKV(
					"event", "error",
					"error.object", r,
					"stack", string(buf[:stackSize]),
				)
				span.SetTag("error", true)
				panic(r)
			}
		}()
		c.Next()
	}
}

// RecoverAndLogToJaeger records a value obtained from recover() on its own span.
func RecoverAndLogToJaeger(appLogger logger.Logger, r interface{}) {
	if r == nil {
		return
	}
	tracer := opentracing.GlobalTracer()
	span := tracer.StartSpan("panic-recovery")
	defer span.Finish()

	stackTrace := string(debug.Stack())
	span.LogKV(
		"event", "error",
		"error.object", r,
		"stack", stackTrace,
	)
	span.SetTag("error", true)

	appLogger.Errorf("Recovered from panic: %v\nStack trace:\n%s", r, stackTrace)
}
