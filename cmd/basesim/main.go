//go:build !tinygo

// Command basesim stands in for the base unit on an MQTT-simulated link.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/abiosoft/ishell"
	"github.com/golang/glog"

	"pager/hal"
	"pager/internal/config"
)

const baseKey = "$base"

var (
	mqttURL    = config.DefaultBroker
	selfAddr   = config.DefaultPeer
	remoteAddr = config.DefaultSelf
	timeout    = 5 * time.Second
)

func init() {
	if val := os.Getenv("PAGER_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "broker", mqttURL, "MQTT broker URL.")
	flag.StringVar(&selfAddr, "self", selfAddr, "Address of this base unit.")
	flag.StringVar(&remoteAddr, "remote", remoteAddr, "Address of the remote unit.")
	flag.DurationVar(&timeout, "timeout", timeout, "Broker connect timeout.")
}

var commands = []*ishell.Cmd{
	{
		Name: "call",
		Help: "signal an incoming call (sends 4)",
		Func: func(c *ishell.Context) {
			if err := baseFrom(c).call(); err != nil {
				c.Err(err)
				return
			}
			c.Println("OK")
		},
	},
	{
		Name: "send",
		Help: "N - send one state byte",
		Func: func(c *ishell.Context) {
			v, err := parseValue(c.Args)
			if err == nil {
				err = baseFrom(c).send([]byte{v})
			}
			if err != nil {
				c.Err(err)
				return
			}
			c.Println("OK")
		},
	},
	{
		Name: "raw",
		Help: "HEX.. - send arbitrary bytes",
		Func: func(c *ishell.Context) {
			payload, err := parseRaw(c.Args)
			if err == nil {
				err = baseFrom(c).send(payload)
			}
			if err != nil {
				c.Err(err)
				return
			}
			c.Printf("OK (%d bytes)\n", len(payload))
		},
	},
	{
		Name: "last",
		Help: "show the last frame from the remote",
		Func: func(c *ishell.Context) {
			r, ok := baseFrom(c).lastReceived()
			if !ok {
				c.Println("nothing received")
				return
			}
			c.Printf("%s ago %s\n", time.Since(r.at).Round(time.Millisecond), r)
		},
	},
	{
		Name:    "quit",
		Aliases: []string{"q"},
		Help:    "leave the shell",
		Func: func(c *ishell.Context) {
			c.Stop()
		},
	},
}

func baseFrom(c *ishell.Context) *base {
	return c.Get(baseKey).(*base)
}

func main() {
	flag.Parse()
	defer glog.Flush()

	self, err := hal.ParseAddress(selfAddr)
	if err != nil {
		glog.Exitf("-self: %v", err)
	}
	remote, err := hal.ParseAddress(remoteAddr)
	if err != nil {
		glog.Exitf("-remote: %v", err)
	}

	radio, err := hal.NewMQTTRadio(mqttURL, self)
	if err != nil {
		glog.Exitf("radio: %v", err)
	}
	if err := radio.Connect(timeout); err != nil {
		glog.Exitf("radio: %v", err)
	}
	defer radio.Close()

	shell := ishell.New()
	b := newBase(radio, remote, func(s string) {
		shell.Printf("\nremote %s\n", s)
	})
	shell.Set(baseKey, b)
	shell.SetPrompt(fmt.Sprintf("[%s] > ", remote))
	for _, cmd := range commands {
		shell.AddCmd(cmd)
	}

	if args := flag.Args(); len(args) > 0 {
		if err := shell.Process(strings.Fields(strings.Join(args, " "))...); err != nil {
			glog.Exit(err)
		}
		return
	}
	shell.Printf("base %s calling remote %s via %s\n", self, remote, mqttURL)
	shell.Run()
}
