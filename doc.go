// Package neatevo provides a Go implementation of the NeuroEvolution of
// Augmenting Topologies (NEAT) algorithm.
//
// NEAT evolves both the weights and the topology of small feed-forward
// networks across generations, using historical markings (innovation numbers)
// to make structural crossover meaningful and speciation with fitness sharing
// to protect topological innovation.
//
// The core lives in the neat subpackage; the visualize subpackage renders
// fitness history and genome topology from the core's reporting surface.
//
// Basic usage:
//
//	config, err := neat.LoadConfig("path/to/config.ini")
//	if err != nil {
//		log.Fatalf("Error loading config: %v", err)
//	}
//
//	pop, err := neat.NewPopulation(config)
//	if err != nil {
//		log.Fatalf("Error creating population: %v", err)
//	}
//
//	for i := 0; i < 100; i++ {
//		winner, err := pop.RunGeneration(evalGenomes)
//		if err != nil {
//			log.Fatalf("Error running generation: %v", err)
//		}
//		if winner != nil {
//			fmt.Println("Solution found!")
//			break
//		}
//	}
package neatevo
