package util

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
)

// sends email notification to the team.
const url_SNS_TOPIC = "https://hooks.retailpulse.io/v1/notify"

// NotifyThroughSNS - Send email notification to the team.
func NotifyThroughSNS(source, env, message interface{}) error {
	if env != "staging" && env != "production" && env != "development" {
		return fmt.Errorf("notification skipped for env %s", env)
	}

	body := map[string]interface{}{
		"source":  source,
		"env":     env,
		"message": message,
	}
	jsonBody, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		return err
	}
	if env == "development" {
		fmt.Println("-- Notification Template --")
		fmt.Println(string(jsonBody))
		return nil
	}

	req, err := http.NewRequest("POST", url_SNS_TOPIC, bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return err
	} else if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sns return non 200 status: %d", resp.StatusCode)
	}
	defer resp.Body.Close()

	return nil
}

// NotifyOnPanic - Deferred by job mains. Notifies the team with the stack,
// then re-panics so the process still exits non zero.
func NotifyOnPanic(source, env string) {
	r := recover()
	if r == nil {
		return
	}

	log.WithFields(log.Fields{"source": source, "panic": r}).Error("Recovered from panic.")
	message := map[string]interface{}{
		"panic": fmt.Sprintf("%v", r),
		"stack": string(debug.Stack()),
	}
	if err := NotifyThroughSNS(source, env, message); err != nil {
		log.WithError(err).Error("Failed to notify panic through sns.")
	}

	panic(r)
}
