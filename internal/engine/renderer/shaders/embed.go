// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// PointsVertexShader is the vertex shader for the point cloud.
//
//go:embed points.vert
var PointsVertexShader string

// PointsFragmentShader is the fragment shader for the point cloud.
//
//go:embed points.frag
var PointsFragmentShader string

// BlitVertexShader draws a fullscreen triangle.
//
//go:embed blit.vert
var BlitVertexShader string

// BlitFragmentShader samples the offscreen frame.
//
//go:embed blit.frag
var BlitFragmentShader string
