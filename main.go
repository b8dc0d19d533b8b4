package main

import (
	"context"
	"encoding/base64"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"time"

	easy "git.fiblab.net/utils/logrus-easy-formatter"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/highway-planner/metrics"
	"github.com/tsinghua-fib-lab/highway-planner/task"
	"github.com/tsinghua-fib-lab/highway-planner/utils/config"
	"github.com/tsinghua-fib-lab/highway-planner/utils/input"
)

var (
	// 配置文件路径
	configPath = flag.String("config", "", "config file path (empty means built-in defaults)")
	// 配置文件Base64编码后的数据
	configData = flag.String("config-data", "", "config file base64 encoded data")
	// prometheus指标监听地址，设置为空则不提供
	metricsAddr = flag.String("metrics", "", "prometheus metrics listening address (empty means disabled), e.g. :9100")
	// 加载录制场景的超时时间
	loadTimeout = flag.Duration("load-timeout", 30*time.Second, "scenario loading timeout")

	// log
	logLevels = map[string]logrus.Level{
		"trace":    logrus.TraceLevel,
		"debug":    logrus.DebugLevel,
		"info":     logrus.InfoLevel,
		"warn":     logrus.WarnLevel,
		"error":    logrus.ErrorLevel,
		"critical": logrus.FatalLevel,
		"off":      logrus.PanicLevel,
	}
	logLevel = flag.String("log.level", "info", "日志级别（可选项：trace debug info warn error critical off）")

	log = logrus.WithField("module", "planner-cli")
)

func main() {
	flag.Parse()
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
	if level, ok := logLevels[*logLevel]; ok {
		logrus.SetLevel(level)
	} else {
		log.Panicf("log.level must be one of %v", logLevels)
	}
	// 获取配置
	var file []byte
	var err error
	if *configPath != "" {
		file, err = os.ReadFile(*configPath)
		if err != nil {
			log.Panicf("config file load err: %v", err)
		}
	} else if *configData != "" {
		file, err = base64.StdEncoding.DecodeString(*configData)
		if err != nil {
			log.Panicf("config data load err: %v", err)
		}
	}
	c, err := config.Load(file)
	if err != nil {
		log.Panicf("config file load err: %v", err)
	}
	log.Infof("%+v", c)

	loadCtx, cancel := context.WithTimeout(context.Background(), *loadTimeout)
	scenario, err := input.Init(loadCtx, c)
	cancel()
	if err != nil {
		log.Panicf("scenario load err: %v", err)
	}

	var m *metrics.Metrics
	if *metricsAddr != "" {
		reg := prometheus.NewRegistry()
		m = metrics.New(reg)
		r := chi.NewRouter()
		r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(*metricsAddr, r); err != nil {
				log.Errorf("metrics server: %v", err)
			}
		}()
		log.Infof("metrics served at %s/metrics", *metricsAddr)
	}

	t := task.NewContext(c, scenario, m)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		log.Info("interrupted, stopping after current cycle")
		t.Close()
	}()

	t.Run()
}
