package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"momentum-backtest/internal/api/handlers"
	"momentum-backtest/internal/api/middleware"
)

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	router := gin.New()
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	backtestHandler := handlers.NewBacktestHandler()
	signalsHandler := handlers.NewSignalsHandler()
	strategyHandler := handlers.NewStrategyHandler()
	rankHandler := handlers.NewRankHandler()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/backtest", backtestHandler.RunBacktest)
		api.GET("/backtest/:id/ledger", backtestHandler.GetLedger)

		api.POST("/signals", signalsHandler.CurrentSignals)

		api.GET("/rank", rankHandler.RankInstruments)
		api.GET("/strategies", strategyHandler.ListStrategies)
	}

	addr := fmt.Sprintf(":%s", port)
	logrus.WithField("addr", addr).Info("starting API server")
	if err := router.Run(addr); err != nil {
		logrus.WithError(err).Fatal("failed to start server")
	}
}
