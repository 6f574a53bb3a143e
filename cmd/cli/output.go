package main

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gorilla/websocket"

	"carcatalog/pkg/models"
)

func printJSON(v any) error {
	var (
		b   []byte
		err error
	)
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("json: %w", err)
	}
	fmt.Println(string(b))
	return nil
}

func runSyncTCP(addr string) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	log.Printf("[watch] connected to %s", addr)
	reader := bufio.NewScanner(conn)
	for reader.Scan() {
		printEvent(reader.Bytes())
	}
	if err := reader.Err(); err != nil {
		return err
	}
	return os.ErrClosed
}

func runWebSocket(wsURL string) error {
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()
	log.Printf("[watch] connected to %s", wsURL)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		printEvent(msg)
	}
}

func printEvent(line []byte) {
	var obj map[string]any
	if !pretty || json.Unmarshal(line, &obj) != nil {
		fmt.Println(string(line))
		return
	}
	b, _ := json.MarshalIndent(obj, "", "  ")
	fmt.Println(string(b))
}

func websocketURL(baseURL, path string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	scheme := "ws"
	if u.Scheme == "https" {
		scheme = "wss"
	}
	return (&url.URL{
		Scheme: scheme,
		Host:   u.Host,
		Path:   path,
	}).String(), nil
}

func writeJSON(path string, items []models.CatalogRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func writeCSV(path string, items []models.CatalogRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{
		"id", "brand", "country", "segment", "model", "generation", "modification",
		"engine_type", "engine_cylinders", "engine_displacement", "engine_horsepower",
		"body_length", "body_width", "body_height", "body_style",
	}); err != nil {
		return err
	}
	for _, r := range items {
		if err := writer.Write([]string{
			strconv.FormatInt(r.ID, 10),
			r.Brand,
			r.Country,
			r.Segment,
			r.Model,
			r.Generation,
			r.Modification,
			r.Engine.FuelType.String(),
			r.Engine.CylinderType.String(),
			strconv.Itoa(r.Engine.Displacement),
			strconv.Itoa(r.Engine.Horsepower),
			strconv.Itoa(r.Body.Length),
			strconv.Itoa(r.Body.Width),
			strconv.Itoa(r.Body.Height),
			r.Body.BodyStyle,
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
