package webui

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebugIndexHandler(t *testing.T) {
	webUI := createTestWebUI(t)

	tests := []struct {
		dataType string
		title    string
		contains string
	}{
		{dataType: "rows", title: "Dataset - Rows", contains: "Afghanistan"},
		{dataType: "summary", title: "Dataset - Summary", contains: "69.57 años"},
		{dataType: "continents", title: "Dataset - Continents", contains: "Oceania"},
		{dataType: "countries", title: "Dataset - Countries", contains: "New Zealand"},
		{dataType: "means", title: "Dataset - Means by Continent", contains: "gdpPercap"},
		{dataType: "warnings", title: "Dataset - Parse Warnings", contains: "[]string"},
		{dataType: "", title: "Choose a data type", contains: "Please use one of the following"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			rec, body := serveWebUI(t, webUI, "/debug/?dataType="+tt.dataType)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, body, "<h1>"+tt.title+"</h1>")
			assert.Contains(t, body, tt.contains)
		})
	}
}

func TestDebugIndexHandlerRequiresKeyWhenConfigured(t *testing.T) {
	webUI := createTestWebUI(t)
	webUI.Config.ApiKeys = []string{"ops"}

	rec, _ := serveWebUI(t, webUI, "/debug/?dataType=rows")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = serveWebUI(t, webUI, "/debug/?dataType=rows&key=ops")
	assert.Equal(t, http.StatusOK, rec.Code)
}
