// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/bdp/bdp"
)

func bioBDPUsage() {
	fmt.Println("USAGE: bio-bdp BAM_FILE OUTPUT_PREFIX")
}

func main() {
	flag.Usage = bioBDPUsage
	shutdown := grail.Init()
	if flag.NArg() != 2 {
		bioBDPUsage()
		shutdown()
		os.Exit(1)
	}
	ctx := vcontext.Background()
	if err := bdp.Run(ctx, flag.Arg(0), flag.Arg(1)); err != nil {
		log.Fatalf("%v", err)
	}
	log.Debug.Printf("exiting")
	shutdown()
}
