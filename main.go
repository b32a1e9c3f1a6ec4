/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Rivulet Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/google/rivulet/core/models"
	"github.com/google/rivulet/core/server"
	"github.com/google/rivulet/demo"
)

var addr = flag.String("addr", ":8080", "HTTP listen address")

func main() {
	flag.Parse()

	dataModel := models.NewDataModel()

	people := demo.CreatePeopleTable()
	if err := demo.AttachPeopleDerived(people); err != nil {
		log.Fatalf("Failed to build people table: %v", err)
	}
	dataModel.AddTable("people", people)

	readings := demo.CreateReadingsTable()
	if err := demo.AttachReadingsDerived(readings); err != nil {
		log.Fatalf("Failed to build readings table: %v", err)
	}
	dataModel.AddTable("readings", readings)

	for _, name := range dataModel.TableNames() {
		fmt.Printf("Table %q:\n%s\n", name, dataModel.GetTable(name).ToAscii())
	}

	srv, err := server.NewServer(dataModel, "Rivulet Demo Tables")
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	mux := http.NewServeMux()
	srv.RegisterHandlers(mux)

	log.Printf("Listening on %s", *addr)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
