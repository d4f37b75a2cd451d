// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package renewedPDP is the overall repository for a family of parallel
distributed processing simulators implemented in the Go language
(golang): the auto-associator (AA), competitive learning (CL),
interactive activation and competition (IAC), constraint satisfaction
(CS, with Boltzmann and harmony modes) and the pattern associator (PA).

This top-level of the repository has no functional code -- everything is organized
into the following sub-repositories:

* topo: the sparse receiver-side topology store: per-unit sender windows,
weights, learning rates, biases and sigmas, with text and JSON weight files.

* cons: the constraint resolver: code letters, random / positive / negative
pools and linked groups that share one value.

* netfile: the network description loader (definitions:, constraints:,
network:, biases:, sigmas: sections).

* vars: named configuration scalars settable from descriptions and configs.

* policy: activation, stochastic sampling, annealing, winner-take-all and
learning rules, plus pattern statistics.

* sched: the epoch / pattern / cycle scheduler with shuffling, convergence,
the interrupt flag and step-grain checkpoints.

* pats: pattern files and distortions.

* sim: a session running one of the five models.

* config, logging: run configurations (TOML or YAML) and leveled logging.

* cmd/pdp: the command line driver. examples/bench is a benchmark and
examples/pa and examples/cs hold small runnable configurations.
*/
package renewedPDP
