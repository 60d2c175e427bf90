package utils

import (
	"context"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is replaced by InitLogger or InitElasticLogger at startup. It
// discards everything until then so packages can log from tests.
var Logger = &AppLogger{Logger: zap.NewNop()}

type AppLogger struct {
	*zap.Logger
	esClient  *elasticsearch.Client
	indexName string
}

func productionConfig() zap.Config {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return config
}

func InitLogger(serviceName string) {
	zapLogger, err := productionConfig().Build()
	if err != nil {
		panic(err)
	}

	if serviceName != "" {
		zapLogger = zapLogger.With(zap.String("service", serviceName))
	}
	Logger = &AppLogger{Logger: zapLogger}
}

func InitElasticLogger(elasticUrl, serviceName string) {
	u, err := url.Parse(elasticUrl)
	if err != nil {
		panic(err)
	}

	indexName := u.Query().Get("index")
	password, _ := u.User.Password()
	esCfg := elasticsearch.Config{
		Addresses: []string{u.Scheme + "://" + u.Host},
		Username:  u.User.Username(),
		Password:  password,
	}

	esClient, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		panic(err)
	}

	config := productionConfig()
	encoder := zapcore.NewJSONEncoder(config.EncoderConfig)

	esWriter := &ElasticWriter{client: esClient, indexName: indexName}
	consoleCore := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(os.Stdout)), config.Level)
	elasticCore := zapcore.NewCore(encoder, zapcore.AddSync(esWriter), config.Level)

	zapLogger := zap.New(zapcore.NewTee(consoleCore, elasticCore))
	zapLogger = zapLogger.With(zap.String("service", serviceName))
	Logger = &AppLogger{Logger: zapLogger, esClient: esClient, indexName: indexName}
}

func (l *AppLogger) String(key string, value string) zap.Field {
	return zap.String(key, value)
}

func (l *AppLogger) Int(key string, value int) zap.Field {
	return zap.Int(key, value)
}

func (l *AppLogger) Err(err error) zap.Field {
	return zap.Error(err)
}

// ElasticWriter implements zapcore.WriteSyncer interface
type ElasticWriter struct {
	client    *elasticsearch.Client
	indexName string
}

func (ew *ElasticWriter) Write(p []byte) (n int, err error) {
	res, err := ew.client.Index(
		ew.indexName,
		strings.NewReader(string(p)),
		ew.client.Index.WithContext(context.Background()),
		ew.client.Index.WithDocumentID(strconv.FormatInt(time.Now().UnixNano(), 10)),
	)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()

	return len(p), nil
}

func (ew *ElasticWriter) Sync() error {
	return nil
}
