package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/viventriglia/vesuvius-sentinel/catalog"
	"github.com/viventriglia/vesuvius-sentinel/localindex"
	"github.com/viventriglia/vesuvius-sentinel/metrics"
	"github.com/viventriglia/vesuvius-sentinel/util"
	"github.com/viventriglia/vesuvius-sentinel/web"
	cli "gopkg.in/urfave/cli.v1"
)

func getPortStr() string {
	if port, ok := os.LookupEnv("PORT"); ok {
		return ":" + port
	}
	return ":8080"
}

func createRouter(ctx util.LogContext) (*mux.Router, error) {
	router := mux.NewRouter()
	router.Use(metrics.Middleware)
	router.HandleFunc("/", func(writer http.ResponseWriter, request *http.Request) {
		writer.Write([]byte("OK"))
	})
	router.Handle("/metrics", metrics.Handler())

	router.Handle("/discover/{itemType}", catalog.NewDiscoverHandler())
	router.Handle("/thumb/{itemType}/{id}.png", catalog.NewThumbnailHandler())
	router.Handle("/ndvi/{itemType}/{id}.png", catalog.NewNDVIHandler())

	if mapHandler, err := web.NewMapHandler(); err == nil {
		router.Handle("/map/{itemType}/{id}", mapHandler)
	} else {
		return nil, err
	}

	if localDiscoverHandler, err := localindex.NewDiscoverHandler(getDbConnectionFunc); err == nil {
		router.Handle("/localindex/discover", localDiscoverHandler)
	} else {
		return nil, err
	}

	if localMetadataHandler, err := localindex.NewMetadataHandler(getDbConnectionFunc); err == nil {
		router.Handle("/localindex/scene/{id}", localMetadataHandler)
	} else {
		return nil, err
	}

	if localPreviewHandler, err := localindex.NewPreviewHandler(getDbConnectionFunc); err == nil {
		router.Handle("/localindex/preview/{id}.jpg", localPreviewHandler)
	} else {
		return nil, err
	}

	// Registered last so the more specific routes above win
	router.Handle("/{itemType}/{id}", catalog.NewMetadataHandler())

	return router, nil
}

func serveAction(*cli.Context) {
	logContext := &(util.BasicLogContext{})

	portStr := getPortStr()

	if router, err := createRouter(logContext); err == nil {
		launchServerFunc(portStr, router)
	} else {
		util.LogSimpleErr(logContext, "Failed to create router: ", err)
	}
}

var launchServerFunc = launchServer

func launchServer(portStr string, router *mux.Router) {
	server := http.Server{
		Addr:    portStr,
		Handler: router,
	}

	log.Fatal(server.ListenAndServe())
}
