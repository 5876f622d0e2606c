package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ositopolar/fleet-console/internal/config"
)

type reading struct {
	ID          string  `json:"id"`
	EquipmentID int64   `json:"equipmentId"`
	Temperature float64 `json:"temperature"`
	Timestamp   string  `json:"timestamp"`
}

func main() {
	equipmentID := flag.Int64("equipment", 1, "equipment id to report for")
	base := flag.Float64("base", -18, "mean temperature in °C")
	count := flag.Int("count", 100, "number of readings to publish")
	flag.Parse()

	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	opts := mqtt.NewClientOptions().AddBroker(config.MQTTBroker())
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("mqtt connect")
	}
	defer client.Disconnect(250)

	topic := fmt.Sprintf("%s/%d", config.MQTTTopic(), *equipmentID)
	for i := 0; i < *count; i++ {
		r := reading{
			ID:          uuid.NewString(),
			EquipmentID: *equipmentID,
			Temperature: *base + rand.NormFloat64()*2,
			Timestamp:   time.Now().UTC().Format(time.RFC3339Nano),
		}
		// one in twenty readings is a door-left-open spike
		if rand.Intn(20) == 0 {
			r.Temperature += 8
		}
		payload, _ := json.Marshal(r)
		token := client.Publish(topic, 0, false, payload)
		token.Wait()
		time.Sleep(500 * time.Millisecond)
	}
	log.Info().Int("count", *count).Str("topic", topic).Msg("simulation done")
}
