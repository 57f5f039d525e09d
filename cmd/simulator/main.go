package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/teachos/schedsim/internal/infrastructure/config"
	"github.com/teachos/schedsim/internal/infrastructure/monitoring"
	"github.com/teachos/schedsim/internal/logging"
	"github.com/teachos/schedsim/internal/sim"
)

func main() {
	scenarioPath := flag.String("scenario", "", "YAML scenario file to load at startup")
	autoCycles := flag.Int("auto", 0, "run this many cycles non-interactively and exit")
	flag.Parse()

	cfg := config.LoadOrDefault()

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	simulator, err := sim.New(cfg,
		sim.WithLogger(logger),
		sim.WithMetrics(monitoring.NewMetrics()),
	)
	if err != nil {
		logger.Fatal("failed to create simulator", zap.Error(err))
	}

	if *scenarioPath != "" {
		scenario, err := sim.LoadScenario(*scenarioPath)
		if err != nil {
			logger.Fatal("failed to load scenario", zap.Error(err))
		}
		if err := simulator.ApplyScenario(scenario); err != nil {
			logger.Fatal("failed to apply scenario", zap.Error(err))
		}
		logger.Info("scenario applied", zap.String("name", scenario.Name))
	}

	if *autoCycles > 0 {
		runner := sim.NewRunner(simulator, cfg.Runner.TicksPerSecond, logger)
		if _, err := runner.Run(context.Background(), *autoCycles); err != nil {
			logger.Fatal("autoplay failed", zap.Error(err))
		}
		printProcesses(simulator)
		printResources(simulator)
		return
	}

	repl(simulator)
}

func repl(s *sim.Simulator) {
	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("\nOS Simulator - %s (cycle %d)\n", s.AlgorithmName(), s.Clock())
		fmt.Println("1. Create process      7. Resume process")
		fmt.Println("2. List processes      8. Terminate process")
		fmt.Println("3. Show resources      9. Show event log")
		fmt.Println("4. Change algorithm   10. Send message")
		fmt.Println("5. Run cycles         11. Read messages")
		fmt.Println("6. Suspend process    12. Producer-consumer")
		fmt.Println("0. Exit")

		switch prompt(in, "Option") {
		case "1":
			createProcess(s, in)
		case "2":
			printProcesses(s)
		case "3":
			printResources(s)
		case "4":
			changeAlgorithm(s, in)
		case "5":
			runCycles(s, in)
		case "6":
			withPID(s, in, s.Suspend)
		case "7":
			withPID(s, in, s.Resume)
		case "8":
			withPID(s, in, s.Terminate)
		case "9":
			for _, line := range s.Events() {
				fmt.Println(line)
			}
		case "10":
			sendMessage(s, in)
		case "11":
			readMessages(s, in)
		case "12":
			producerConsumer(s, in)
		case "0":
			return
		}
	}
}

func createProcess(s *sim.Simulator, in *bufio.Scanner) {
	priority := promptInt(in, "Priority (1-5)", 3)
	memory := promptInt(in, "Memory (MB)", 256)
	burst := promptInt(in, "CPU burst", 5)

	snap, err := s.CreateProcess(priority, memory, burst)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	fmt.Printf("process created (pid %d)\n", snap.PID)
}

func printProcesses(s *sim.Simulator) {
	fmt.Printf("%-6s %-12s %-9s %-12s %-10s %-9s\n",
		"PID", "STATE", "PRIORITY", "MEMORY(MB)", "REMAINING", "MESSAGES")
	for _, p := range s.ListProcesses() {
		fmt.Printf("%-6d %-12s %-9d %-12d %-10d %-9d\n",
			p.PID, p.State, p.Priority, p.MemoryMB, p.RemainingBurst, s.MailboxSize(p.PID))
	}
}

func printResources(s *sim.Simulator) {
	status := s.ResourceStatus()
	cpu := "busy"
	if status.CPUFree {
		cpu = "free"
	}
	fmt.Printf("CPU: %s | Memory: %d/%d MB used\n", cpu, status.MemoryUsed, status.MemoryTotal)
}

func changeAlgorithm(s *sim.Simulator, in *bufio.Scanner) {
	fmt.Println("Algorithms: fcfs, sjf, priority, round_robin")
	name := prompt(in, "Algorithm")
	quantum := 0
	if name == "round_robin" {
		quantum = promptInt(in, "Quantum", 2)
	}
	if err := s.SetAlgorithm(name, quantum); err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	fmt.Printf("algorithm changed to %s\n", s.AlgorithmName())
}

func runCycles(s *sim.Simulator, in *bufio.Scanner) {
	cycles := promptInt(in, "Cycles to run", 5)
	for i := 0; i < cycles; i++ {
		event := s.ExecuteCycle()
		if event.Process != nil {
			fmt.Printf("cycle %d: %s (pid %d, remaining %d)\n",
				event.Cycle, event.Kind, event.Process.PID, event.Process.RemainingBurst)
		} else {
			fmt.Printf("cycle %d: idle\n", event.Cycle)
		}
	}
	printProcesses(s)
}

func withPID(s *sim.Simulator, in *bufio.Scanner, op func(uint32) error) {
	pid := promptInt(in, "PID", 1)
	if err := op(uint32(pid)); err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	fmt.Println("ok")
}

func sendMessage(s *sim.Simulator, in *bufio.Scanner) {
	sender := promptInt(in, "Sender PID", 1)
	receiver := promptInt(in, "Receiver PID", 2)
	content := prompt(in, "Message")
	if err := s.SendMessage(uint32(sender), uint32(receiver), content); err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	fmt.Println("message sent")
}

func readMessages(s *sim.Simulator, in *bufio.Scanner) {
	pid := uint32(promptInt(in, "PID", 1))
	if s.MailboxSize(pid) == 0 {
		fmt.Println("no messages")
		return
	}
	for {
		msg, ok := s.ReceiveMessage(pid)
		if !ok {
			return
		}
		fmt.Printf("from %d: %s\n", msg.Sender, msg.Content)
	}
}

func producerConsumer(s *sim.Simulator, in *bufio.Scanner) {
	fmt.Println("1. Produce  2. Consume  3. Status  4. Logs")
	switch prompt(in, "Option") {
	case "1":
		item := prompt(in, "Item")
		if s.TryProduce(item) {
			fmt.Println("produced")
		} else {
			fmt.Println("would block: buffer full")
		}
	case "2":
		if item, ok := s.TryConsume(); ok {
			fmt.Printf("consumed %q\n", item)
		} else {
			fmt.Println("would block: buffer empty")
		}
	case "3":
		st := s.BufferStatus()
		fmt.Printf("buffer %d/%d, empty %d, full %d, content %v\n",
			st.Items, st.Capacity, st.EmptySlots, st.FullSlots, st.Content)
	case "4":
		for _, line := range s.BufferLogs() {
			fmt.Println(line)
		}
	}
}

func prompt(in *bufio.Scanner, label string) string {
	fmt.Printf("%s: ", label)
	if !in.Scan() {
		os.Exit(0)
	}
	return strings.TrimSpace(in.Text())
}

func promptInt(in *bufio.Scanner, label string, def int) int {
	text := prompt(in, fmt.Sprintf("%s [%d]", label, def))
	if text == "" {
		return def
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return def
	}
	return n
}
