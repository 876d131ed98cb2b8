package main

import (
	"os"

	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"
)

//**********************************************************
// config
//**********************************************************

func ReadConfig(file string) Config {
	slog.Info("Reading config file")
	data, err := os.ReadFile(file)
	if err != nil {
		slog.Error("failed to read config file: " + err.Error())
		panic(err)
	}
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		slog.Error("failed to parse config file: " + err.Error())
		panic(err)
	}
	return config
}

type Config struct {
	Scenario string `yaml:"scenario"`
	Output   string `yaml:"output"`
	Weights  struct {
		Distance float64 `yaml:"distance"`
		Time     float64 `yaml:"time"`
		Traffic  float64 `yaml:"traffic"`
	} `yaml:"weights"`
	Routing struct {
		Start    string `yaml:"start"`
		End      string `yaml:"end"`
		MaxDepth int    `yaml:"max-depth"`
	} `yaml:"routing"`
	Placement struct {
		Stations        int     `yaml:"stations"`
		CoverageRadius  float64 `yaml:"coverage-radius"`
		DemandThreshold float64 `yaml:"demand-threshold"`
		MaxIterations   int     `yaml:"max-iterations"`
		Tolerance       float64 `yaml:"tolerance"`
	} `yaml:"placement"`
}
