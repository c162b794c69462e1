package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rhyrak/go-schedule/internal/boundary"
	"github.com/rhyrak/go-schedule/internal/engine"
)

func handleGenerate(ctx *gin.Context) {
	raw := map[string]interface{}{}
	if err := ctx.ShouldBindJSON(&raw); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "internal", "message": err.Error()})
		return
	}

	doc, err := boundary.DecodeRequest(raw)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "internal", "message": err.Error()})
		return
	}

	entities, config, err := boundary.ToModel(doc)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "internal", "message": err.Error()})
		return
	}

	result := engine.Generate(config, entities)

	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	ctx.JSON(status, boundary.FromResult(result))
}
