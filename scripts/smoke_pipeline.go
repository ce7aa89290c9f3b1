package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url, token string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func uploadDocument(token, childID, path string) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("child_id", childID)
	_ = w.WriteField("subject", "math")
	_ = w.WriteField("grade", "3")

	fw, err := w.CreateFormFile("file", "smoke.txt")
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	fw.Write(data)
	w.Close()

	req, err := http.NewRequest("POST", baseURL+"/document/v1", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := (&http.Client{}).Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	color.Green("Status: %s", resp.Status)
	var parsed map[string]interface{}
	json.Unmarshal(body, &parsed)
	prettyPrint(parsed)

	if data, ok := parsed["data"].(map[string]interface{}); ok {
		if id, ok := data["id"].(string); ok {
			return id, nil
		}
	}
	return "", fmt.Errorf("no document id in response")
}

func main() {
	token := os.Getenv("SMOKE_TOKEN")
	childID := os.Getenv("SMOKE_CHILD_ID")
	file := os.Getenv("SMOKE_FILE")
	if token == "" || childID == "" || file == "" {
		color.Red("Set SMOKE_TOKEN, SMOKE_CHILD_ID and SMOKE_FILE first")
		os.Exit(1)
	}

	color.Cyan("🚀 Starting Document Pipeline Smoke Test\n")

	// 1. Upload
	color.Yellow("\n1. Upload Document")
	docID, err := uploadDocument(token, childID, file)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}

	// 2. Poll the scan status until the quick scan lands
	color.Yellow("\n2. Wait for Quick Scan")
	for i := 0; i < 30; i++ {
		resp, body, err := sendRequest("GET", "/document/v1/"+docID+"/scan", token, nil)
		if err != nil {
			color.Red("Failed: %v", err)
			os.Exit(1)
		}
		var scanResp map[string]interface{}
		json.Unmarshal(body, &scanResp)
		if data, ok := scanResp["data"].(map[string]interface{}); ok {
			if status, _ := data["scan_status"].(string); status == "ready" || status == "failed" {
				color.Green("Status: %s (scan_status=%s)", resp.Status, status)
				prettyPrint(scanResp)
				break
			}
		}
		time.Sleep(2 * time.Second)
	}

	// 3. Confirm the suggestion
	color.Yellow("\n3. Confirm Topic/Language")
	resp, body, err := sendRequest("POST", "/document/v1/"+docID+"/confirm", token, map[string]interface{}{
		"topic":    "Fractions",
		"language": "en",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var confirmResp map[string]interface{}
	json.Unmarshal(body, &confirmResp)
	prettyPrint(confirmResp)

	// 4. Replay the confirm, should be a 200 no-op
	color.Yellow("\n4. Replay Confirm (idempotent)")
	resp, body, _ = sendRequest("POST", "/document/v1/"+docID+"/confirm", token, map[string]interface{}{
		"topic":    "Fractions",
		"language": "en",
	})
	color.Green("Status: %s", resp.Status)
	json.Unmarshal(body, &confirmResp)
	prettyPrint(confirmResp)

	// 5. Poll the document until the pipeline finishes
	color.Yellow("\n5. Wait for Pipeline")
	for i := 0; i < 120; i++ {
		_, body, err := sendRequest("GET", "/document/v1/"+docID, token, nil)
		if err != nil {
			color.Red("Failed: %v", err)
			os.Exit(1)
		}
		var docResp map[string]interface{}
		json.Unmarshal(body, &docResp)
		if data, ok := docResp["data"].(map[string]interface{}); ok {
			stage, _ := data["pipeline_stage"].(string)
			if stage == "ready" || stage == "failed" {
				prettyPrint(docResp)
				break
			}
			fmt.Printf("  stage=%s progress=%v\n", stage, data["progress_hint"])
		}
		time.Sleep(2 * time.Second)
	}

	// 6. Fetch the pack with its games
	color.Yellow("\n6. Fetch Learning Pack")
	resp, body, err = sendRequest("GET", "/document/v1/"+docID+"/pack", token, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var packResp map[string]interface{}
	json.Unmarshal(body, &packResp)
	prettyPrint(packResp)

	color.Cyan("\n✨ Smoke test finished")
}
