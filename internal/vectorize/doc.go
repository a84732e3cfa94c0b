// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package vectorize implements the image-to-SVG conversion workflow.
//
// An image is picked through an ImageSource, held by a Controller, uploaded
// by a Client as a multipart request to the vectorization service, and the
// resulting SVG is exposed to a ShareSink.
//
// # Key Types
//
//   - Controller: owns the screen state and drives conversions
//   - Client: HTTP client for the vectorization endpoint
//   - Parameters: the fixed conversion settings sent with every request
//   - ConversionError: typed failure for every conversion path
//   - ScreenState: Empty, Ready, Processing, Succeeded, Failed
//
// # Usage
//
//	client := vectorize.NewClient(vectorize.DefaultClientConfig())
//	ctrl := vectorize.NewController(client, nil)
//	sel, _ := vectorize.NewFileSource("art.png").Pick(ctx)
//	ctrl.SelectFrom(sel)
//	snap, _ := ctrl.Convert(ctx)
//	if snap.State == vectorize.StateSucceeded {
//	    fmt.Println(snap.Result.SVG)
//	}
package vectorize
