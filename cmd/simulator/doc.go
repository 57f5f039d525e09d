// Command simulator is the interactive text driver for the teaching OS
// simulator: a menu over the core API for creating processes, stepping
// scheduling cycles, exchanging messages, and playing with the
// producer-consumer buffer.
//
// Usage:
//
//	simulator                         interactive menu
//	simulator -scenario demo.yaml     preload a workload
//	simulator -auto 20                run 20 paced cycles and exit
//
// Configuration comes from SIM_* environment variables; see
// internal/infrastructure/config.
package main
